package specification

import "gorm.io/gorm"

// BySessionId filters conversations by their external session correlation key
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByLevel filters system logs by level
type ByLevel struct {
	Level string
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	if s.Level == "" {
		return db
	}
	return db.Where("level = ?", s.Level)
}
