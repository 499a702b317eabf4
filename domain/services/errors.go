package services

import "errors"

// Sentinel errors ที่ handler ใช้ map เป็น HTTP status
var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrNotOwner           = errors.New("asset does not belong to this user")
	ErrUploadIncomplete   = errors.New("object has not been uploaded yet")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrAssetLinked        = errors.New("asset is linked to another record and cannot be deleted")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrRoleAlreadySet    = errors.New("role has already been set")
	ErrSlugTaken         = errors.New("slug is already taken")
	ErrNoTeamSelected    = errors.New("no team selected")
	ErrTeamNotFound      = errors.New("team not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrNotTeamMember     = errors.New("user is not a member of this team")
	ErrApplicationExists = errors.New("an active application already exists for this email")
)
