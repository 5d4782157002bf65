package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/avagarcia28867-droid/baobaolebot/pkg/model"
	"github.com/avagarcia28867-droid/baobaolebot/pkg/money"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the admin server is running$`, s.theAdminServerIsRunning)
	sc.Step(`^I am logged in as the admin$`, s.iAmLoggedInAsTheAdmin)

	// Authentication steps
	sc.Step(`^I log in with username "([^"]*)" and password "([^"]*)"$`, s.iLogInWith)
	sc.Step(`^I should receive a session token$`, s.iShouldReceiveASessionToken)

	// Request steps
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I GET "([^"]*)" without a token$`, s.iGETWithoutAToken)
	sc.Step(`^I (approve|reject) (deposit|withdrawal) (\d+)$`, s.iActOnRecord)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)

	// Fixture steps
	sc.Step(`^a user (\d+) exists with balance "([^"]*)"$`, s.aUserExistsWithBalance)
	sc.Step(`^a pending deposit (\d+) of "([^"]*)" exists for user (\d+)$`, s.aPendingDepositExists)
	sc.Step(`^a pending withdrawal (\d+) of "([^"]*)" exists for user (\d+)$`, s.aPendingWithdrawalExists)

	// Assertion steps
	sc.Step(`^user (\d+) should have balance "([^"]*)"$`, s.userShouldHaveBalance)
	sc.Step(`^deposit (\d+) should have status "([^"]*)"$`, s.depositShouldHaveStatus)
	sc.Step(`^withdrawal (\d+) should have status "([^"]*)"$`, s.withdrawalShouldHaveStatus)
	sc.Step(`^user (\d+) should have a transaction of type "([^"]*)"$`, s.userShouldHaveTransactionOfType)
}

// Background steps

func (s *StepsContext) theAdminServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmLoggedInAsTheAdmin() error {
	if err := s.iLogInWith(testAdminUser, testAdminPassword); err != nil {
		return err
	}
	return s.iShouldReceiveASessionToken()
}

// Authentication steps

func (s *StepsContext) iLogInWith(username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	return s.do("POST", "/api/login", bytes.NewReader(body), false)
}

func (s *StepsContext) iShouldReceiveASessionToken() error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse login response %q: %w", s.responseBody, err)
	}
	if resp.Token == "" {
		return fmt.Errorf("login response carried no token: %s", s.responseBody)
	}
	s.authToken = resp.Token
	return nil
}

// Request steps

func (s *StepsContext) iGET(path string) error {
	return s.do("GET", path, nil, true)
}

func (s *StepsContext) iGETWithoutAToken(path string) error {
	return s.do("GET", path, nil, false)
}

func (s *StepsContext) iActOnRecord(action, kind string, id int) error {
	body, err := json.Marshal(map[string]string{"action": action})
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/%ss/%d", kind, id)
	return s.do("POST", path, bytes.NewReader(body), true)
}

func (s *StepsContext) do(method, path string, body io.Reader, authed bool) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)",
			status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("response body %q does not contain %q", s.responseBody, text)
	}
	return nil
}

// Fixture steps

func (s *StepsContext) aUserExistsWithBalance(tgID int, balance string) error {
	amount, err := money.Parse(balance)
	if err != nil {
		return err
	}
	user := model.User{TgID: int64(tgID), Username: fmt.Sprintf("user%d", tgID), Balance: amount}
	return s.tc.DB.Where(model.User{TgID: int64(tgID)}).
		Assign(model.User{Balance: amount}).
		FirstOrCreate(&user).Error
}

func (s *StepsContext) aPendingDepositExists(id int, amount string, tgID int) error {
	micro, err := money.Parse(amount)
	if err != nil {
		return err
	}
	deposit := model.Deposit{
		ID:           uint(id),
		UserID:       int64(tgID),
		Amount:       micro,
		RandomAmount: micro + 123,
		Status:       model.DepositPending,
	}
	return s.tc.DB.Create(&deposit).Error
}

func (s *StepsContext) aPendingWithdrawalExists(id int, amount string, tgID int) error {
	micro, err := money.Parse(amount)
	if err != nil {
		return err
	}
	withdrawal := model.Withdrawal{
		ID:            uint(id),
		UserID:        int64(tgID),
		Amount:        micro,
		WalletAddress: "TXYZa1b2c3d4e5f6g7h8i9j0k1l2m3n4o5",
		Status:        model.WithdrawalPending,
	}
	return s.tc.DB.Create(&withdrawal).Error
}

// Assertion steps

func (s *StepsContext) userShouldHaveBalance(tgID int, balance string) error {
	want, err := money.Parse(balance)
	if err != nil {
		return err
	}
	var user model.User
	if err := s.tc.DB.Where("tg_id = ?", tgID).First(&user).Error; err != nil {
		return fmt.Errorf("user %d not found: %w", tgID, err)
	}
	if user.Balance != want {
		return fmt.Errorf("expected balance %s, got %s",
			money.FormatExact(want), money.FormatExact(user.Balance))
	}
	return nil
}

func (s *StepsContext) depositShouldHaveStatus(id int, status string) error {
	var deposit model.Deposit
	if err := s.tc.DB.First(&deposit, id).Error; err != nil {
		return fmt.Errorf("deposit %d not found: %w", id, err)
	}
	if deposit.Status != status {
		return fmt.Errorf("expected deposit status %q, got %q", status, deposit.Status)
	}
	return nil
}

func (s *StepsContext) withdrawalShouldHaveStatus(id int, status string) error {
	var withdrawal model.Withdrawal
	if err := s.tc.DB.First(&withdrawal, id).Error; err != nil {
		return fmt.Errorf("withdrawal %d not found: %w", id, err)
	}
	if withdrawal.Status != status {
		return fmt.Errorf("expected withdrawal status %q, got %q", status, withdrawal.Status)
	}
	return nil
}

func (s *StepsContext) userShouldHaveTransactionOfType(tgID int, txType string) error {
	var count int64
	err := s.tc.DB.Model(&model.Transaction{}).
		Where("user_id = ? AND type = ?", tgID, txType).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %d has no transaction of type %q", tgID, txType)
	}
	return nil
}
