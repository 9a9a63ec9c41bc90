package main

import (
	"testing"

	"stockcard-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := utils.GenerateJWT(7, "user@test.com", "staff")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := utils.ValidateJWT("not-a-token")
	assert.Error(t, err)

	_, err = utils.ValidateJWT("")
	assert.Error(t, err)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	token, err := utils.GenerateJWT(7, "user@test.com", "staff")
	assert.NoError(t, err)

	_, err = utils.ValidateJWT(token + "x")
	assert.Error(t, err)
}
