package model

import "time"

// Admin represents the single privileged identity as stored in the `admins`
// table.  Admins are provisioned through a direct API call; there is no
// self-service signup.  The password is never stored in plain text, only a
// bcrypt hash of it.
//
// Fields:
//  ID           – primary key identifier of the admin.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Admin struct {
    ID           uint64    // admins.id
    Email        string    // admins.email
    PasswordHash string    // admins.password_hash
    CreatedAt    time.Time // admins.created_at
    UpdatedAt    time.Time // admins.updated_at
}
