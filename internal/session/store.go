package session

import (
	"errors"

	"github.com/ClinicaVital/CV-Portal/internal/db"
	"github.com/ClinicaVital/CV-Portal/internal/utils"
	"gorm.io/gorm"
)

// ErrNotFound reports an absent session: never saved, or cleared.
var ErrNotFound = errors.New("session not found")

// Repository is the single typed interface every route guard and handler goes
// through. It replaces the old ad-hoc key lookups that let pages disagree on
// whether a user was logged in.
type Repository interface {
	Save(s Session) error
	Load(sessionID string) (Session, error)
	Clear(sessionID string) error
	SetDisplayName(sessionID, name string) error
	MarkNotificationsSeen(sessionID string, ids []string) error
}

// Store is the gorm-backed Repository.
type Store struct{}

func (Store) Save(s Session) error {
	// Re-login replaces any previous session rows for the same cédula. The
	// delete and create ride one transaction so concurrent logins for the
	// same cédula cannot interleave into two live rows.
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cedula = ?", s.Cedula).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&s).Error
	})
}

func (Store) Load(sessionID string) (Session, error) {
	var s Session
	err := db.DB.First(&s, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (Store) Clear(sessionID string) error {
	return db.DB.Where("session_id = ?", sessionID).Delete(&Session{}).Error
}

func (Store) SetDisplayName(sessionID, name string) error {
	return db.DB.Model(&Session{}).Where("session_id = ?", sessionID).
		Update("display_name", name).Error
}

func (Store) MarkNotificationsSeen(sessionID string, ids []string) error {
	var s Session
	if err := db.DB.First(&s, "session_id = ?", sessionID).Error; err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(s.SeenNotifications))
	for _, id := range s.SeenNotifications {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.SeenNotifications = append(s.SeenNotifications, id)
	}
	return db.DB.Model(&s).Update("seen_notifications", s.SeenNotifications).Error
}

// FindSessionByID satisfies the route-guard fetcher interface.
func (st Store) FindSessionByID(id string) (utils.SessionData, error) {
	s, err := st.Load(id)
	if err != nil {
		return utils.SessionData{}, err
	}
	return utils.SessionData{
		SessionID:   s.SessionID,
		Cedula:      s.Cedula,
		Token:       s.Token,
		Rol:         s.Rol,
		DisplayName: s.DisplayName,
	}, nil
}
