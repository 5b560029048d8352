// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/treasure-hunt/models"
	"github.com/danielhkuo/treasure-hunt/testutil"
)

func TestSetPassKey(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewPassKeyHandler(env.keys, env.cfg)

	req := testutil.MakeRequest("POST", "/passkey", models.SetPassKeyRequest{
		PassKey: "ABCDEFGHIJ",
	}, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.SetPassKey(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.SetPassKeyResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.KeyID == "" {
		t.Error("Expected a key_id")
	}

	key, ok, err := env.keys.Current()
	if err != nil || !ok {
		t.Fatalf("Current() = ok=%v, err=%v", ok, err)
	}
	if key.Value != "ABCDEFGHIJ" {
		t.Errorf("Stored key = %q", key.Value)
	}
}

func TestSetPassKey_RequiresAdminKey(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewPassKeyHandler(env.keys, env.cfg)

	req := testutil.MakeRequest("POST", "/passkey", models.SetPassKeyRequest{
		PassKey: "ABCDEFGHIJ",
	}, map[string]string{"X-Admin-Key": "wrong"})
	w := httptest.NewRecorder()

	h.SetPassKey(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestSetPassKey_WrongLength(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewPassKeyHandler(env.keys, env.cfg)

	for _, value := range []string{"", "SHORT", "ABCDEFGHIJK"} {
		req := testutil.MakeRequest("POST", "/passkey", models.SetPassKeyRequest{
			PassKey: value,
		}, adminHeaders(env.cfg))
		w := httptest.NewRecorder()

		h.SetPassKey(w, req)

		testutil.AssertStatus(t, w, 400)
	}
}

func TestGetPassKey(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewPassKeyHandler(env.keys, env.cfg)

	if _, err := env.keys.Set("ABCDEFGHIJ"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	req := testutil.MakeRequest("GET", "/passkey", nil, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.GetPassKey(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.PassKeyResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.PassKey != "ABCDEFGHIJ" {
		t.Errorf("pass_key = %q", resp.PassKey)
	}
}

func TestGetPassKey_Unset(t *testing.T) {
	env := newHandlerEnv(t)
	h := NewPassKeyHandler(env.keys, env.cfg)

	req := testutil.MakeRequest("GET", "/passkey", nil, adminHeaders(env.cfg))
	w := httptest.NewRecorder()

	h.GetPassKey(w, req)

	testutil.AssertStatus(t, w, 404)
}
