package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CalendarItem struct {
	bun.BaseModel `bun:"table:calendar_items"`

	EventId     int       `bun:",pk,autoincrement" json:"eventId"`
	ProgenyId   int       `json:"progenyId"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location"`
	Context     string    `json:"context"`
	AllDay      bool      `json:"allDay"`
	AccessLevel int       `json:"accessLevel"`
	Author      string    `json:"author"`
}

type Contact struct {
	bun.BaseModel `bun:"table:contacts"`

	ContactId       int       `bun:",pk,autoincrement" json:"contactId"`
	ProgenyId       int       `json:"progenyId"`
	FirstName       string    `json:"firstName"`
	MiddleName      string    `json:"middleName"`
	LastName        string    `json:"lastName"`
	DisplayName     string    `json:"displayName"`
	AddressIdNumber int       `json:"addressIdNumber"`
	Email1          string    `json:"email1"`
	Email2          string    `json:"email2"`
	PhoneNumber     string    `json:"phoneNumber"`
	MobileNumber    string    `json:"mobileNumber"`
	Website         string    `json:"website"`
	Notes           string    `json:"notes"`
	Context         string    `json:"context"`
	Tags            string    `json:"tags"`
	Active          bool      `json:"active"`
	AccessLevel     int       `json:"accessLevel"`
	Author          string    `json:"author"`
	DateAdded       time.Time `json:"dateAdded"`
}

type Address struct {
	bun.BaseModel `bun:"table:addresses"`

	AddressId    int    `bun:",pk,autoincrement" json:"addressId"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

type Friend struct {
	bun.BaseModel `bun:"table:friends"`

	FriendId        int       `bun:",pk,autoincrement" json:"friendId"`
	ProgenyId       int       `json:"progenyId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	FriendSince     time.Time `json:"friendSince"`
	FriendAddedDate time.Time `json:"friendAddedDate"`
	PictureLink     string    `json:"pictureLink"`
	Type            int       `json:"type"`
	Context         string    `json:"context"`
	Notes           string    `json:"notes"`
	Tags            string    `json:"tags"`
	AccessLevel     int       `json:"accessLevel"`
	Author          string    `json:"author"`
}

type Location struct {
	bun.BaseModel `bun:"table:locations"`

	LocationId  int       `bun:",pk,autoincrement" json:"locationId"`
	ProgenyId   int       `json:"progenyId"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	StreetName  string    `json:"streetName"`
	HouseNumber string    `json:"houseNumber"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	County      string    `json:"county"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	PostalCode  string    `json:"postalCode"`
	Date        time.Time `json:"date"`
	DateAdded   time.Time `json:"dateAdded"`
	Notes       string    `json:"notes"`
	Tags        string    `json:"tags"`
	AccessLevel int       `json:"accessLevel"`
	Author      string    `json:"author"`
}

type Measurement struct {
	bun.BaseModel `bun:"table:measurements"`

	MeasurementId int       `bun:",pk,autoincrement" json:"measurementId"`
	ProgenyId     int       `json:"progenyId"`
	Weight        float64   `json:"weight"`
	Height        float64   `json:"height"`
	Circumference float64   `json:"circumference"`
	EyeColor      string    `json:"eyeColor"`
	HairColor     string    `json:"hairColor"`
	Date          time.Time `json:"date"`
	CreatedDate   time.Time `json:"createdDate"`
	AccessLevel   int       `json:"accessLevel"`
	Author        string    `json:"author"`
}

type Sleep struct {
	bun.BaseModel `bun:"table:sleep"`

	SleepId     int       `bun:",pk,autoincrement" json:"sleepId"`
	ProgenyId   int       `json:"progenyId"`
	SleepStart  time.Time `json:"sleepStart"`
	SleepEnd    time.Time `json:"sleepEnd"`
	SleepRating int       `json:"sleepRating"`
	SleepNotes  string    `json:"sleepNotes"`
	CreatedDate time.Time `json:"createdDate"`
	AccessLevel int       `json:"accessLevel"`
	Author      string    `json:"author"`
}

type Vaccination struct {
	bun.BaseModel `bun:"table:vaccinations"`

	VaccinationId          int       `bun:",pk,autoincrement" json:"vaccinationId"`
	ProgenyId              int       `json:"progenyId"`
	VaccinationName        string    `json:"vaccinationName"`
	VaccinationDescription string    `json:"vaccinationDescription"`
	VaccinationDate        time.Time `json:"vaccinationDate"`
	Notes                  string    `json:"notes"`
	AccessLevel            int       `json:"accessLevel"`
	Author                 string    `json:"author"`
}

type VocabularyItem struct {
	bun.BaseModel `bun:"table:vocabulary"`

	WordId      int       `bun:",pk,autoincrement" json:"wordId"`
	ProgenyId   int       `json:"progenyId"`
	Word        string    `json:"word"`
	SoundsLike  string    `json:"soundsLike"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Date        time.Time `json:"date"`
	DateAdded   time.Time `json:"dateAdded"`
	AccessLevel int       `json:"accessLevel"`
	Author      string    `json:"author"`
}

// MobileNotification is a message queued for a user's devices.
type MobileNotification struct {
	bun.BaseModel `bun:"table:mobile_notifications"`

	NotificationId int       `bun:",pk,autoincrement" json:"notificationId"`
	UserId         string    `json:"userId"`
	ItemId         string    `json:"itemId"`
	ItemType       int       `json:"itemType"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	IconLink       string    `json:"iconLink"`
	Time           time.Time `json:"time"`
	Language       string    `json:"language"`
	Read           bool      `json:"read"`
}
