package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/steelhall-dev/steelhall/db"
	"github.com/steelhall-dev/steelhall/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser_Self(t *testing.T) {
	r := setupTest(t)
	user, token := createTestUser(t, "karol@example.com", false)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "karol@example.com", body["email"])
}

func TestGetUser_ForeignAccountInvisible(t *testing.T) {
	r := setupTest(t)
	target, _ := createTestUser(t, "target@example.com", false)
	_, token := createTestUser(t, "caller@example.com", false)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/users/%d", target.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUser_AdminSeesAnyAccount(t *testing.T) {
	r := setupTest(t)
	target, _ := createTestUser(t, "target@example.com", false)
	_, adminToken := createTestUser(t, "admin@example.com", true)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/users/%d", target.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListUsers_AdminOnly(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "plain@example.com", false)
	_, adminToken := createTestUser(t, "admin@example.com", true)

	w := doRequest(t, r, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestChangePassword_Success(t *testing.T) {
	r := setupTest(t)
	user, token := createTestUser(t, "karol@example.com", false)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), token, map[string]interface{}{
		"old_password": testPassword,
		"new_password": "brand-new-password",
	})

	require.Equal(t, http.StatusNoContent, w.Code)

	// The old password no longer works, the new one does.
	w = doRequest(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "karol@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "karol@example.com",
		"password": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	r := setupTest(t)
	user, token := createTestUser(t, "karol@example.com", false)

	var before models.User
	require.NoError(t, db.DB.First(&before, user.ID).Error)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), token, map[string]interface{}{
		"old_password": "not-my-password",
		"new_password": "brand-new-password",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong password.")

	// The stored hash is untouched.
	var after models.User
	require.NoError(t, db.DB.First(&after, user.ID).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestChangePassword_MissingFields(t *testing.T) {
	r := setupTest(t)
	user, token := createTestUser(t, "karol@example.com", false)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), token, map[string]interface{}{
		"new_password": "brand-new-password",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword_AdminCannotRotateForeignPassword(t *testing.T) {
	r := setupTest(t)
	target, _ := createTestUser(t, "target@example.com", false)
	_, adminToken := createTestUser(t, "admin@example.com", true)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/users/%d", target.ID), adminToken, map[string]interface{}{
		"old_password": testPassword,
		"new_password": "brand-new-password",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_OrphansOwnedHalls(t *testing.T) {
	r := setupTest(t)
	user, token := createTestUser(t, "karol@example.com", false)
	hall := createTestHall(t, &user.ID, 10, 10)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The hall survives without an owner.
	var stored models.Hall
	require.NoError(t, db.DB.First(&stored, hall.ID).Error)
	assert.Nil(t, stored.SalesmanID)
}

func TestDeleteUser_AdminDeletesForeignAccount(t *testing.T) {
	r := setupTest(t)
	target, _ := createTestUser(t, "target@example.com", false)
	_, adminToken := createTestUser(t, "admin@example.com", true)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", target.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteUser_ForeignAccountInvisible(t *testing.T) {
	r := setupTest(t)
	target, _ := createTestUser(t, "target@example.com", false)
	_, token := createTestUser(t, "caller@example.com", false)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", target.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
