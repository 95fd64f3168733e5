package models

import (
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

// Item types referenced by TimeLineItem.ItemType.
const (
	KinaUnaTypePicture = iota + 1
	KinaUnaTypeVideo
	KinaUnaTypeCalendar
	KinaUnaTypeVocabulary
	KinaUnaTypeSkill
	KinaUnaTypeFriend
	KinaUnaTypeMeasurement
	KinaUnaTypeSleep
	KinaUnaTypeNote
	KinaUnaTypeContact
	KinaUnaTypeVaccination
	KinaUnaTypeLocation
)

type TimeLineItem struct {
	bun.BaseModel `bun:"table:timeline"`

	TimeLineId  int       `bun:",pk,autoincrement" json:"timeLineId"`
	ProgenyId   int       `json:"progenyId"`
	ProgenyTime time.Time `json:"progenyTime"`
	CreatedTime time.Time `json:"createdTime"`
	ItemType    int       `json:"itemType"`
	ItemId      string    `json:"itemId"`
	Tags        string    `json:"tags"`
	AccessLevel int       `json:"accessLevel"`
	CreatedBy   string    `json:"createdBy"`
}

// Ref returns the reference to the record this timeline entry points at.
func (t *TimeLineItem) Ref() ItemRef {
	return ItemRef{ItemId: t.ItemId, ItemType: t.ItemType}
}

// ItemRef identifies the record behind a timeline entry.
type ItemRef struct {
	ItemId   string
	ItemType int
}

func (r ItemRef) String() string {
	return strconv.Itoa(r.ItemType) + ":" + r.ItemId
}
