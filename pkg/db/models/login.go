package models

import "time"

// Login is one account row in the legacy auth database. A null LPassword
// means the account has not completed registration yet.
type Login struct {
	Username  string     `gorm:"column:Username;primaryKey" json:"Username"`
	LPassword *string    `gorm:"column:LPassword" json:"-"`
	OTP       *string    `gorm:"column:OTP" json:"-"`
	OTPExpiry *time.Time `gorm:"column:OTP_Expiry" json:"-"`
	LEmpID    string     `gorm:"column:LEmpID" json:"LEmpID"`
}

func (Login) TableName() string {
	return "Login"
}

// Registered reports whether the account has a password set.
func (l Login) Registered() bool {
	return l.LPassword != nil
}
