package gocardless

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTokenServer wraps a handler with the token endpoint and tracks how the
// client authenticates.
func newTokenServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v2/token/new/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			SecretID  string `json:"secret_id"`
			SecretKey string `json:"secret_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode token request: %v", err)
		}
		if creds.SecretID != "sid" || creds.SecretKey != "skey" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"bad credentials"}`))
			return
		}
		w.Write([]byte(`{"access":"test-token","refresh":"r"}`))
	})
	if handler != nil {
		mux.HandleFunc("/api/v2/", func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("Authorization = %q, want Bearer test-token", got)
			}
			handler(w, r)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient("sid", "skey", WithBaseURL(srv.URL+"/api/v2"))
}

func TestToken(t *testing.T) {
	srv := newTokenServer(t, nil)
	c := newTestClient(srv)

	token, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "test-token" {
		t.Errorf("token = %q", token)
	}
}

func TestTokenBadCredentials(t *testing.T) {
	srv := newTokenServer(t, nil)
	c := NewClient("wrong", "creds", WithBaseURL(srv.URL+"/api/v2"))

	_, err := c.Token(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", authErr.Status)
	}
}

func TestTokenMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something":"else"}`))
	}))
	defer srv.Close()
	c := NewClient("sid", "skey", WithBaseURL(srv.URL))

	_, err := c.Token(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError for missing access field, got %v", err)
	}
}

func TestListRequisitionsEnvelope(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"results":[
			{"id":"r1","status":"LN","accounts":["a1","a2"]},
			{"id":"r2","status":"LN","accounts":["a3"]}
		]}`))
	})
	c := newTestClient(srv)

	reqs, err := c.ListRequisitions(context.Background())
	if err != nil {
		t.Fatalf("ListRequisitions: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requisitions, got %d", len(reqs))
	}
	if reqs[0].ID != "r1" || len(reqs[0].Accounts) != 2 {
		t.Errorf("unexpected requisition: %+v", reqs[0])
	}
}

func TestListRequisitionsBareArray(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"r1","status":"LN","accounts":["a1"]}]`))
	})
	c := newTestClient(srv)

	reqs, err := c.ListRequisitions(context.Background())
	if err != nil {
		t.Fatalf("ListRequisitions: %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != "r1" {
		t.Errorf("unexpected requisitions: %+v", reqs)
	}
}

func TestGetRequisitionNotFound(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})
	c := newTestClient(srv)

	_, err := c.GetRequisition(context.Background(), "missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != "missing" {
		t.Errorf("ID = %q", nf.ID)
	}
}

func TestGetRequisitionRemoteError(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})
	c := newTestClient(srv)

	_, err := c.GetRequisition(context.Background(), "r1")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", remote.Status)
	}
}

func TestAccountTransactionsNested(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("include"); got != "booked" {
			t.Errorf("include = %q, want booked", got)
		}
		w.Write([]byte(`{"transactions":{
			"booked":[{"transactionId":"t1","transactionAmount":{"amount":"-1.50","currency":"EUR"}}],
			"pending":[{"transactionId":"t2"}]
		}}`))
	})
	c := newTestClient(srv)

	page, err := c.AccountTransactions(context.Background(), "a1", TransactionOptions{Include: "booked"})
	if err != nil {
		t.Fatalf("AccountTransactions: %v", err)
	}
	if len(page.Booked) != 1 || page.Booked[0].Identifier() != "t1" {
		t.Errorf("booked = %+v", page.Booked)
	}
	if got := page.Booked[0].Amount(); got != "-1.50" {
		t.Errorf("amount = %q", got)
	}
	if len(page.Pending) != 1 {
		t.Errorf("pending = %+v", page.Pending)
	}
}

func TestAccountTransactionsTopLevel(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"booked":[{"transactionId":"t1"}]}`))
	})
	c := newTestClient(srv)

	page, err := c.AccountTransactions(context.Background(), "a1", TransactionOptions{})
	if err != nil {
		t.Fatalf("AccountTransactions: %v", err)
	}
	if len(page.Booked) != 1 || page.Booked[0].Identifier() != "t1" {
		t.Errorf("booked = %+v", page.Booked)
	}
}

func TestAuthFailurePropagatesFromCalls(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API call should not be reached without a token")
	})
	c := NewClient("wrong", "creds", WithBaseURL(srv.URL+"/api/v2"))

	_, err := c.ListRequisitions(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}
