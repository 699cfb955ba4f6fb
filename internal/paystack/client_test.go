package paystack

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInitializeSendsKoboAndParsesURL(t *testing.T) {
	var received initializeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.example.com/abc123",
				"access_code":       "abc123",
				"reference":         received.Reference,
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_abc", srv.URL, "https://app.example.com/v1/payments/callback")

	url, err := client.Initialize("ada@example.com", 44500, "RWB-1-a", Metadata{BookingID: "b-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if url != "https://checkout.example.com/abc123" {
		t.Errorf("authorization url = %q", url)
	}
	if received.Amount != 4450000 {
		t.Errorf("wire amount = %d kobo, want 4450000", received.Amount)
	}
	if received.CallbackURL != "https://app.example.com/v1/payments/callback" {
		t.Errorf("callback url = %q", received.CallbackURL)
	}
	if received.Metadata.BookingID != "b-1" {
		t.Errorf("metadata booking id = %q", received.Metadata.BookingID)
	}
}

func TestInitializeRejectedByGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_bad", srv.URL, "")

	if _, err := client.Initialize("ada@example.com", 100, "RWB-1-a", Metadata{}); err == nil {
		t.Fatal("expected error for rejected initialization")
	}
}

func TestVerifyConvertsAmountAndEchoesMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/RWF-2-b" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":    "success",
				"reference": "RWF-2-b",
				"amount":    2000000,
				"metadata": map[string]interface{}{
					"type":    "wallet_funding",
					"user_id": "u-1",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_abc", srv.URL, "")

	tx, err := client.Verify("RWF-2-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tx.Status != TransactionSuccess {
		t.Errorf("status = %q, want success", tx.Status)
	}
	if tx.Amount != 20000 {
		t.Errorf("amount = %d naira, want 20000", tx.Amount)
	}
	if tx.Metadata.Type != MetadataTypeWalletFunding || tx.Metadata.UserID != "u-1" {
		t.Errorf("metadata not echoed: %+v", tx.Metadata)
	}
}

func TestVerifyGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_abc", srv.URL, "")

	if _, err := client.Verify("missing-ref"); err == nil {
		t.Fatal("expected error for unknown reference")
	}
}
