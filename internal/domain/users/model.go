package users

import "time"

// User es la credencial local de la aplicación. En operación normal existe
// exactamente una fila (el admin sembrado en bootstrap); la app nunca la
// actualiza ni la borra.
type User struct {
	ID       string
	Username string

	// PasswordHash es el hash bcrypt de la contraseña.
	// Nunca se persiste la contraseña en claro.
	PasswordHash string

	CreatedAt time.Time
}
