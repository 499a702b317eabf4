package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	// ตัวอักษรสำหรับ suffix (ตัด 0, O, l, 1 ที่สับสนง่ายออก)
	alphanumeric = "abcdefghjkmnpqrstuvwxyz23456789"
	// ตัวอักษรสำหรับ password ที่ generate ให้ team owner
	passwordChars = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789!@#$%"
)

// GenerateRandomString สร้าง random string ความยาว n ตัวอักษร
func GenerateRandomString(n int) string {
	return randomFrom(alphanumeric, n)
}

// GeneratePathSuffix สร้าง suffix 8 ตัวอักษรสำหรับ storage pathname
func GeneratePathSuffix() string {
	return GenerateRandomString(8)
}

// GeneratePassword สร้าง password ชั่วคราวสำหรับ account ที่สร้างโดย affiliate
func GeneratePassword(n int) string {
	return randomFrom(passwordChars, n)
}

func randomFrom(charset string, n int) string {
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			// fallback ถ้า crypto/rand ใช้ไม่ได้
			result[i] = charset[i%len(charset)]
			continue
		}
		result[i] = charset[num.Int64()]
	}
	return string(result)
}
