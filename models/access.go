package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Access levels stored on records and grants.
const (
	AccessLevelAdmin     = 0
	AccessLevelFamily    = 1
	AccessLevelCaretaker = 2
	AccessLevelFriend    = 3
	AccessLevelDefault   = 4
	AccessLevelPublic    = 5
)

// UserAccess grants a user access to one progeny.
type UserAccess struct {
	bun.BaseModel `bun:"table:user_access"`

	AccessId      int    `bun:",pk,autoincrement" json:"accessId"`
	ProgenyId     int    `json:"progenyId"`
	UserId        string `json:"userId"`
	AccessLevel   int    `json:"accessLevel"`
	CanContribute bool   `json:"canContribute"`
}

func (u UserAccess) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ProgenyId, validation.Required, validation.Min(1)),
		validation.Field(&u.UserId, validation.Required),
		validation.Field(&u.AccessLevel, validation.Min(AccessLevelAdmin), validation.Max(AccessLevelPublic)),
	)
}

type Progeny struct {
	bun.BaseModel `bun:"table:progeny"`

	Id          int       `bun:",pk,autoincrement" json:"id"`
	Name        string    `json:"name"`
	NickName    string    `json:"nickName"`
	BirthDay    time.Time `json:"birthDay"`
	TimeZone    string    `json:"timeZone"`
	Admins      string    `json:"admins"`
	PictureLink string    `json:"pictureLink"`
}

// AdminList returns the lower cased admin e-mails.
func (p *Progeny) AdminList() []string {
	var admins []string
	for _, a := range strings.Split(p.Admins, ",") {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			admins = append(admins, a)
		}
	}
	return admins
}

// IsInAdminList reports whether email is one of the progeny's admins.
func (p *Progeny) IsInAdminList(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range p.AdminList() {
		if a == email {
			return true
		}
	}
	return false
}
