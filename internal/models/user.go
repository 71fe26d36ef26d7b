package models

import "time"

type User struct {
	ID           string
	Name         string
	Username     *string
	Email        string
	Phone        *string
	AvatarData   []byte
	AvatarMIME   *string
	DOB          *time.Time
	Gender       *string
	Bio          *string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
