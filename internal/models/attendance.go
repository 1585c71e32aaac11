package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckInMethod string

const (
	CheckInQR     CheckInMethod = "qr"
	CheckInManual CheckInMethod = "manual"

	AttendanceEntity = "attendance"
)

var checkInMethodMap = map[string]bool{
	string(CheckInQR):     true,
	string(CheckInManual): true,
}

func IsValidCheckInMethod(method string) bool {
	return checkInMethodMap[method]
}

type Attendance struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID     primitive.ObjectID  `bson:"member_id" json:"member_id"`
	MemberName   string              `bson:"member_name,omitempty" json:"member_name,omitempty"` // display only
	MemberCode   string              `bson:"member_code,omitempty" json:"member_code,omitempty"` // display only
	ClassID      *primitive.ObjectID `bson:"class_id,omitempty" json:"class_id,omitempty"`
	Date         time.Time           `bson:"date" json:"date"` // day bucket
	CheckInTime  time.Time           `bson:"check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time          `bson:"check_out_time,omitempty" json:"check_out_time,omitempty"`
	Method       CheckInMethod       `bson:"check_in_method" json:"check_in_method"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}
