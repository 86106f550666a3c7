// Package party holds the supporting parties of a loan: witnesses and guarantors.
package party

import "time"

// Table: witness_info
type Witness struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberNumber string    `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	Name         string    `gorm:"column:name;size:200;not null" json:"name"`
	Relation     string    `gorm:"column:relation;size:100" json:"relation"`
	Address      string    `gorm:"column:address;size:300" json:"address"`
	Tole         string    `gorm:"column:tole;size:100" json:"tole"`
	Ward         string    `gorm:"column:ward;size:10" json:"ward"`
	Age          string    `gorm:"column:age;size:10" json:"age"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Witness) TableName() string { return "witness_info" }

// Table: guarantor_details
type Guarantor struct {
	ID                       uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberNumber             string    `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	GuarantorMemberNumber    string    `gorm:"column:guarantor_member_number;size:50" json:"guarantor_member_number"`
	Name                     string    `gorm:"column:guarantor_name;size:200;not null" json:"name"`
	Address                  string    `gorm:"column:guarantor_address;size:300" json:"address"`
	Ward                     string    `gorm:"column:guarantor_ward;size:10" json:"ward"`
	Phone                    string    `gorm:"column:guarantor_phone;size:20" json:"phone"`
	Citizenship              string    `gorm:"column:guarantor_citizenship;size:50" json:"citizenship"`
	Grandfather              string    `gorm:"column:guarantor_grandfather;size:200" json:"grandfather"`
	Father                   string    `gorm:"column:guarantor_father;size:200" json:"father"`
	CitizenshipIssueDistrict string    `gorm:"column:guarantor_citizenship_issue_district;size:100" json:"citizenship_issue_district"`
	Age                      string    `gorm:"column:guarantor_age;size:10" json:"age"`
	CreatedAt                time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Guarantor) TableName() string { return "guarantor_details" }
