package authn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
)

const (
	alreadyRegisteredMessage = "An account associated with this email already exists, please login instead"
	registerConflictMessage  = "An account already exists with this account"
	noEmployeeMessage        = "We do not have a @premierenergies email address registered for you. If you have a company email ID, please contact HR to get it updated or contact your manager to raise a ticket on your behalf."
	invalidOTPMessage        = "Invalid OTP"
	expiredOTPMessage        = "OTP has expired. Please request a new one."
	badCredentialsMessage    = "Your Username or Password are incorrect"
	passwordPolicyMessage    = "Password must be at least 8 characters long and contain at least one number and one special character."
)

const passwordSpecialChars = "!@#$%^&*"

type repository interface {
	FindLogin(ctx context.Context, username string) (*models.Login, error)
	FindActiveEmployee(ctx context.Context, email string) (*models.Employee, error)
	UpsertOTP(ctx context.Context, username, otp string, expiry time.Time, empID string) error
	FindLoginByOTP(ctx context.Context, username, otp string) (*models.Login, error)
	SetPassword(ctx context.Context, username, password string) error
	FindByCredentials(ctx context.Context, username, password string) (*models.Login, error)
}

// Mailer delivers OTP codes.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Service implements the OTP-gated registration and login flows over the
// legacy Login/EMP tables.
type Service interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (empID string, err error)
	ForgotPassword(ctx context.Context, email, password string) error
}

// ServiceParams bundles the dependencies of the auth service.
type ServiceParams struct {
	Repo   repository
	Mailer Mailer
	Config config.AuthConfig
}

type service struct {
	repo   repository
	mailer Mailer
	cfg    config.AuthConfig
}

// NewService constructs the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("auth repository is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if params.Config.EmailDomain == "" {
		return nil, fmt.Errorf("auth email domain is required")
	}
	if params.Config.OTPTTL <= 0 {
		params.Config.OTPTTL = 5 * time.Minute
	}
	return &service{repo: params.Repo, mailer: params.Mailer, cfg: params.Config}, nil
}

// fullEmail appends the company domain to the submitted local part.
func (s *service) fullEmail(email string) string {
	return strings.TrimSpace(email) + "@" + s.cfg.EmailDomain
}

// RequestOTP issues a fresh 6-digit code, upserts it on the account row, and
// mails it. Repeated calls overwrite the previous code. A mail failure after
// the row write surfaces as a server error even though the OTP persists
// undelivered: the legacy contract has the same partial-failure shape.
func (s *service) RequestOTP(ctx context.Context, email string) error {
	username := s.fullEmail(email)

	account, err := s.repo.FindLogin(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup account")
	}
	if account != nil && account.Registered() {
		return pkgerrors.New(pkgerrors.CodeConflict, alreadyRegisteredMessage)
	}

	employee, err := s.repo.FindActiveEmployee(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup employee")
	}
	if employee == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, noEmployeeMessage)
	}

	otp, err := generateOTP()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	expiry := time.Now().Add(s.cfg.OTPTTL)

	if err := s.repo.UpsertOTP(ctx, username, otp, expiry, employee.EmpID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist otp")
	}

	body := fmt.Sprintf("<p>Your OTP code is: <strong>%s</strong></p>", otp)
	if err := s.mailer.Send(ctx, username, "Your OTP Code", body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp mail")
	}
	return nil
}

// VerifyOTP checks the submitted code against the stored one. A row match
// with a lapsed expiry is reported distinctly from no match at all.
func (s *service) VerifyOTP(ctx context.Context, email, otp string) error {
	username := s.fullEmail(email)

	account, err := s.repo.FindLoginByOTP(ctx, username, otp)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup otp")
	}
	if account == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, invalidOTPMessage)
	}
	if account.OTPExpiry == nil || !time.Now().Before(*account.OTPExpiry) {
		return pkgerrors.New(pkgerrors.CodeValidation, expiredOTPMessage)
	}
	return nil
}

// Register sets the password, completing the Unregistered -> Registered
// transition. OTP verification is a separate call with no token binding the
// two: a structural weakness of the legacy flow, preserved as-is.
func (s *service) Register(ctx context.Context, email, password string) error {
	username := s.fullEmail(email)

	account, err := s.repo.FindLogin(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup account")
	}
	if account != nil && account.Registered() {
		return pkgerrors.New(pkgerrors.CodeConflict, registerConflictMessage)
	}

	if !passwordMeetsPolicy(password) {
		return pkgerrors.New(pkgerrors.CodeValidation, passwordPolicyMessage)
	}

	if err := s.repo.SetPassword(ctx, username, password); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set password")
	}
	return nil
}

// Login returns the linked employee id on an exact credential match.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	username := s.fullEmail(email)

	account, err := s.repo.FindByCredentials(ctx, username, password)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check credentials")
	}
	if account == nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, badCredentialsMessage)
	}
	return account.LEmpID, nil
}

// ForgotPassword overwrites the password with no prior verification in this
// call itself, matching the legacy flow.
func (s *service) ForgotPassword(ctx context.Context, email, password string) error {
	username := s.fullEmail(email)
	if err := s.repo.SetPassword(ctx, username, password); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset password")
	}
	return nil
}

// passwordMeetsPolicy checks: at least 8 characters, at least one digit, at
// least one of !@#$%^&*.
func passwordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	if !strings.ContainsAny(password, "0123456789") {
		return false
	}
	return strings.ContainsAny(password, passwordSpecialChars)
}
