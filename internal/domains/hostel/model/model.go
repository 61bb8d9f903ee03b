package model

import "dwell/shared/model"

const (
	TableName  = "hostels"
	EntityName = "hostel"

	FieldID          = "id"
	FieldName        = "name"
	FieldLocation    = "location"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
	FieldCustodianID = "custodian_id"
)

type Hostel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Location    string `db:"location"`
	Capacity    int    `db:"capacity"`
	Description string `db:"description"`
	CustodianID string `db:"custodian_id"`
	model.Metadata
}
