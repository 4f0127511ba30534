package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required,uname"`
	Password string `json:"password" validate:"required,pwd"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterAliases(v)
	return v
}

func TestAliases(t *testing.T) {
	v := newValidator()
	require.NoError(t, v.Struct(signup{Username: "alice", Password: "secret1"}))

	err := v.Struct(signup{Username: "al", Password: "123"})
	require.Error(t, err)
	details := ToDetails(err)
	require.Equal(t, "must be 3 to 32 characters long", details["Username"])
	require.Equal(t, "must be at least 6 characters long", details["Password"])
}

func TestToDetails_Required(t *testing.T) {
	err := newValidator().Struct(signup{})
	require.Equal(t, map[string]string{"Username": "is required", "Password": "is required"}, ToDetails(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var s signup
	err := json.Unmarshal([]byte(`{"username":`), &s)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	require.Nil(t, ToDetails(nil))
}

func TestToDetails_GenericMessage(t *testing.T) {
	type title struct {
		Title string `validate:"max=3"`
	}
	err := newValidator().Struct(title{Title: "Blue in Green"})
	require.Equal(t, map[string]string{"Title": "validation failed for 'max' with parameter '3'"}, ToDetails(err))
}
