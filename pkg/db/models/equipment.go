package models

// Equipment is one spare-part record. Column names mirror the legacy
// EquipmentSpareData table exactly, including its PascalCase convention.
type Equipment struct {
	SlNo            int    `gorm:"column:SlNo;primaryKey;autoIncrement" json:"SlNo"`
	PlantCode       string `gorm:"column:PlantCode" json:"PlantCode"`
	Plant           string `gorm:"column:Plant" json:"Plant"`
	Line            string `gorm:"column:Line" json:"Line"`
	EquipmentName   string `gorm:"column:EquipmentName" json:"EquipmentName"`
	EquipmentNo     string `gorm:"column:EquipmentNo" json:"EquipmentNo"`
	MachineSupplier string `gorm:"column:MachineSupplier" json:"MachineSupplier"`
	Type            string `gorm:"column:Type" json:"Type"`
	Category        string `gorm:"column:Category" json:"Category"`
	VED             string `gorm:"column:VED" json:"VED"`

	SpareName       string `gorm:"column:SpareName" json:"SpareName"`
	MaterialCodeSAP string `gorm:"column:MaterialCodeSAP" json:"MaterialCodeSAP"`
	SAPShortText    string `gorm:"column:SAPShortText" json:"SAPShortText"`
	FullDescription string `gorm:"column:FullDescription" json:"FullDescription"`
	PartNo          string `gorm:"column:PartNo" json:"PartNo"`
	Make            string `gorm:"column:Make" json:"Make"`
	Vendor1         string `gorm:"column:Vendor1" json:"Vendor1"`

	SpareLifecycle           string  `gorm:"column:SpareLifecycle" json:"SpareLifecycle"`
	FrequencyMonths          float64 `gorm:"column:FrequencyMonths" json:"FrequencyMonths"`
	TotalQtyPerFrequency     float64 `gorm:"column:TotalQtyPerFrequency" json:"TotalQtyPerFrequency"`
	RequirementPerYear       float64 `gorm:"column:RequirementPerYear" json:"RequirementPerYear"`
	SafetyStock              float64 `gorm:"column:SafetyStock" json:"SafetyStock"`
	TotalAnnualQtyProjection float64 `gorm:"column:TotalAnnualQtyProjection" json:"TotalAnnualQtyProjection"`

	// JSON-encoded []types.FileAttachment; null means no attachments.
	UploadPhotos *string `gorm:"column:UploadPhotos" json:"UploadPhotos"`
	Drawing      *string `gorm:"column:Drawing" json:"Drawing"`
}

func (Equipment) TableName() string {
	return "EquipmentSpareData"
}
