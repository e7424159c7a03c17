package models

type User struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
}
