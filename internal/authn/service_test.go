package authn

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
)

type capturingMailer struct {
	to      string
	subject string
	body    string
	fail    bool
	sent    int
}

func (m *capturingMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.fail {
		return fmt.Errorf("smtp gateway unavailable")
	}
	m.to = to
	m.subject = subject
	m.body = htmlBody
	m.sent++
	return nil
}

type authFixture struct {
	conn   *gorm.DB
	svc    Service
	mailer *capturingMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Login{}, &models.Employee{}))

	mailer := &capturingMailer{}
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(conn),
		Mailer: mailer,
		Config: config.AuthConfig{EmailDomain: "premierenergies.com", OTPTTL: 5 * time.Minute},
	})
	require.NoError(t, err)
	return &authFixture{conn: conn, svc: svc, mailer: mailer}
}

func (f *authFixture) seedEmployee(t *testing.T, empID, email string, active int) {
	t.Helper()
	require.NoError(t, f.conn.Create(&models.Employee{EmpID: empID, EmpEmail: email, ActiveFlag: active}).Error)
}

func (f *authFixture) loginRow(t *testing.T, username string) *models.Login {
	t.Helper()
	var row models.Login
	require.NoError(t, f.conn.First(&row, "Username = ?", username).Error)
	return &row
}

var otpPattern = regexp.MustCompile(`\d{6}`)

func TestRequestOTPCreatesRowAndMailsCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)

	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))

	require.Equal(t, "ravi@premierenergies.com", f.mailer.to)
	require.Equal(t, "Your OTP Code", f.mailer.subject)
	mailed := otpPattern.FindString(f.mailer.body)
	require.Len(t, mailed, 6)

	row := f.loginRow(t, "ravi@premierenergies.com")
	require.NotNil(t, row.OTP)
	require.Equal(t, mailed, *row.OTP)
	require.Equal(t, "E042", row.LEmpID)
	require.NotNil(t, row.OTPExpiry)
	require.True(t, row.OTPExpiry.After(time.Now()))
	require.False(t, row.Registered())
}

func TestRequestOTPOverwritesPreviousCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)

	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))
	first := *f.loginRow(t, "ravi@premierenergies.com").OTP

	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))
	second := *f.loginRow(t, "ravi@premierenergies.com").OTP

	require.NoError(t, f.svc.VerifyOTP(context.Background(), "ravi", second))

	if first != second {
		err := f.svc.VerifyOTP(context.Background(), "ravi", first)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, invalidOTPMessage, typed.Message())
	}
	require.Equal(t, 2, f.mailer.sent)
}

func TestRequestOTPWithoutActiveEmployee(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E099", "former@premierenergies.com", 0)

	for _, local := range []string{"ghost", "former"} {
		err := f.svc.RequestOTP(context.Background(), local)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "local %s", local)
		require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
		require.Equal(t, noEmployeeMessage, typed.Message())
		require.Contains(t, typed.Message(), "We do not have a @premierenergies email address registered for you")
	}
	require.Zero(t, f.mailer.sent)
}

func TestRequestOTPRejectsRegisteredAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	password := "hunter2!"
	require.NoError(t, f.conn.Create(&models.Login{
		Username:  "ravi@premierenergies.com",
		LPassword: &password,
		LEmpID:    "E042",
	}).Error)

	err := f.svc.RequestOTP(context.Background(), "ravi")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
	require.Equal(t, alreadyRegisteredMessage, typed.Message())
}

func TestRequestOTPMailFailureKeepsPersistedCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	f.mailer.fail = true

	err := f.svc.RequestOTP(context.Background(), "ravi")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())

	row := f.loginRow(t, "ravi@premierenergies.com")
	require.NotNil(t, row.OTP)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))

	err := f.svc.VerifyOTP(context.Background(), "ravi", "000000")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, invalidOTPMessage, typed.Message())
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	otp := "123456"
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, f.conn.Create(&models.Login{
		Username:  "ravi@premierenergies.com",
		OTP:       &otp,
		OTPExpiry: &expired,
		LEmpID:    "E042",
	}).Error)

	err := f.svc.VerifyOTP(context.Background(), "ravi", otp)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, expiredOTPMessage, typed.Message())
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))

	for _, password := range []string{"short1!", "nodigits!!", "nospecial99", "        "} {
		err := f.svc.Register(context.Background(), "ravi", password)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "password %q", password)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code(), "password %q", password)
		require.Equal(t, passwordPolicyMessage, typed.Message(), "password %q", password)
	}
}

func TestRegistrationThenLoginFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)

	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))
	otp := *f.loginRow(t, "ravi@premierenergies.com").OTP
	require.NoError(t, f.svc.VerifyOTP(context.Background(), "ravi", otp))
	require.NoError(t, f.svc.Register(context.Background(), "ravi", "S0lar!panels"))

	require.True(t, f.loginRow(t, "ravi@premierenergies.com").Registered())

	empID, err := f.svc.Login(context.Background(), "ravi", "S0lar!panels")
	require.NoError(t, err)
	require.Equal(t, "E042", empID)

	// a second registration attempt for the same account is rejected, with
	// register's own conflict wording rather than send-otp's
	err = f.svc.Register(context.Background(), "ravi", "S0lar!panels")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
	require.Equal(t, registerConflictMessage, typed.Message())
	require.NotEqual(t, alreadyRegisteredMessage, typed.Message())
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))
	require.NoError(t, f.svc.Register(context.Background(), "ravi", "S0lar!panels"))

	for _, attempt := range []struct{ email, password string }{
		{"ravi", "wrong-pass1!"},
		{"nobody", "S0lar!panels"},
	} {
		_, err := f.svc.Login(context.Background(), attempt.email, attempt.password)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		require.Equal(t, badCredentialsMessage, typed.Message())
	}
}

func TestForgotPasswordOverwritesCredential(t *testing.T) {
	f := newAuthFixture(t)
	f.seedEmployee(t, "E042", "ravi@premierenergies.com", 1)
	require.NoError(t, f.svc.RequestOTP(context.Background(), "ravi"))
	require.NoError(t, f.svc.Register(context.Background(), "ravi", "S0lar!panels"))

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ravi", "N3w!passwd"))

	_, err := f.svc.Login(context.Background(), "ravi", "S0lar!panels")
	require.Error(t, err)

	empID, err := f.svc.Login(context.Background(), "ravi", "N3w!passwd")
	require.NoError(t, err)
	require.Equal(t, "E042", empID)
}

func TestGenerateOTPProducesSixDigits(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Regexp(t, `^\d{6}$`, otp)
		seen[otp] = true
	}
	require.Greater(t, len(seen), 1)
}
