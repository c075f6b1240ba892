package models

// Employee is one row of the read-only EMP directory in the legacy database.
type Employee struct {
	EmpID      string `gorm:"column:EmpID;primaryKey" json:"EmpID"`
	EmpEmail   string `gorm:"column:EmpEmail" json:"EmpEmail"`
	ActiveFlag int    `gorm:"column:ActiveFlag" json:"ActiveFlag"`
}

func (Employee) TableName() string {
	return "EMP"
}
