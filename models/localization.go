package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

type KinaUnaLanguage struct {
	bun.BaseModel `bun:"table:languages"`

	Id       int    `bun:",pk,autoincrement" json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Icon     string `json:"icon"`
	IconLink string `json:"iconLink"`
}

func (l KinaUnaLanguage) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name, validation.Required),
		validation.Field(&l.Code, validation.Required),
	)
}

// KinaUnaText is one language variant of a page text. Variants of the same
// text share TextId.
type KinaUnaText struct {
	bun.BaseModel `bun:"table:texts"`

	Id         int       `bun:",pk,autoincrement" json:"id"`
	Title      string    `json:"title"`
	Page       string    `json:"page"`
	Text       string    `json:"text"`
	LanguageId int       `json:"languageId"`
	TextId     int       `json:"textId"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

func (t KinaUnaText) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.Page, validation.Required),
		validation.Field(&t.LanguageId, validation.Required, validation.Min(1)),
	)
}

// KinaUnaTextNumber allocates a TextId and records the language the text was
// first written in.
type KinaUnaTextNumber struct {
	bun.BaseModel `bun:"table:text_numbers"`

	Id              int `bun:",pk,autoincrement" json:"id"`
	DefaultLanguage int `json:"defaultLanguage"`
}

// TextTranslation is one language variant of a word on a page. Variants are
// grouped by Page and Word.
type TextTranslation struct {
	bun.BaseModel `bun:"table:translations"`

	Id          int    `bun:",pk,autoincrement" json:"id"`
	Page        string `json:"page"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	LanguageId  int    `json:"languageId"`
}

func (t TextTranslation) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Page, validation.Required),
		validation.Field(&t.Word, validation.Required),
		validation.Field(&t.LanguageId, validation.Required, validation.Min(1)),
	)
}

// All returns one value of every mapped model.
func All() []any {
	return append(Core(), Media()...)
}

// Core returns the models stored in the main database.
func Core() []any {
	return []any{
		(*CalendarItem)(nil),
		(*Contact)(nil),
		(*Address)(nil),
		(*Friend)(nil),
		(*Location)(nil),
		(*Measurement)(nil),
		(*Sleep)(nil),
		(*Vaccination)(nil),
		(*VocabularyItem)(nil),
		(*TimeLineItem)(nil),
		(*MobileNotification)(nil),
		(*UserAccess)(nil),
		(*Progeny)(nil),
		(*KinaUnaLanguage)(nil),
		(*KinaUnaText)(nil),
		(*KinaUnaTextNumber)(nil),
		(*TextTranslation)(nil),
	}
}

// Media returns the models stored in the media database.
func Media() []any {
	return []any{
		(*CommentThread)(nil),
		(*Comment)(nil),
		(*Picture)(nil),
		(*Video)(nil),
	}
}
