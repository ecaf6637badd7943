package models

// User представляет оператора магазина
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Name         string
}

// Profile - публичные данные пользователя, которые попадают в токен и в ответ логина
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Name: u.Name}
}
