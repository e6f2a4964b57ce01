package quantex

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestAdminTransactionReview(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/transactions/tx1/approve":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message":     "Approved",
				"transaction": Transaction{ID: "tx1", Status: "approved"},
			})
		case "/admin/transactions/tx2/reject":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message":     "Rejected",
				"transaction": Transaction{ID: "tx2", Status: "rejected"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), nil)

	if _, err := client.ApproveTransaction(context.Background(), "tx1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	adoptTestSession(t, client)

	approved, err := client.ApproveTransaction(context.Background(), "tx1")
	if err != nil {
		t.Fatalf("ApproveTransaction failed: %v", err)
	}
	if approved.Status != "approved" {
		t.Fatalf("unexpected transaction %+v", approved)
	}

	rejected, err := client.RejectTransaction(context.Background(), "tx2", "invalid proof")
	if err != nil {
		t.Fatalf("RejectTransaction failed: %v", err)
	}
	if rejected.Status != "rejected" {
		t.Fatalf("unexpected transaction %+v", rejected)
	}

	if got := client.MetricsSnapshot().Counters[MetricAdminAction]; got != 2 {
		t.Fatalf("expected 2 admin actions, got %d", got)
	}
}

func TestAdminAssetManagement(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/assets":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message": "ok",
				"assets":  []Asset{{Symbol: "BTC", Enabled: true}, {Symbol: "DOGE", Enabled: false}},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/admin/assets/SOL":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message": "Asset saved",
				"asset":   Asset{Symbol: "SOL", Name: "Solana", Enabled: true},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/admin/assets/DOGE":
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "Asset removed"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}), nil)
	adoptTestSession(t, client)

	assets, err := client.Assets(context.Background())
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}

	if _, err := client.UpsertAsset(context.Background(), Asset{Name: "No Symbol"}); !errors.Is(err, ErrInvalidAsset) {
		t.Fatalf("expected ErrInvalidAsset, got %v", err)
	}
	saved, err := client.UpsertAsset(context.Background(), Asset{Symbol: "SOL", Name: "Solana", Enabled: true})
	if err != nil {
		t.Fatalf("UpsertAsset failed: %v", err)
	}
	if saved.Name != "Solana" {
		t.Fatalf("unexpected asset %+v", saved)
	}

	if err := client.DeleteAsset(context.Background(), "DOGE"); err != nil {
		t.Fatalf("DeleteAsset failed: %v", err)
	}

	// The asset listing is an admin action like the mutations are.
	if got := client.MetricsSnapshot().Counters[MetricAdminAction]; got != 3 {
		t.Fatalf("expected 3 admin actions, got %d", got)
	}
}

func TestAdminUserControls(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/users":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message": "ok",
				"users":   []User{{ID: "u1"}, {ID: "u2"}},
			})
		case "/admin/users/u2/limits", "/admin/users/u2/tier",
			"/admin/users/u2/kyc/approve", "/admin/users/u2/kyc/reject":
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), nil)

	if _, err := client.ListUsers(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	adoptTestSession(t, client)

	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if err := client.SetUserLimits(context.Background(), "", UserLimits{}); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if err := client.SetUserLimits(context.Background(), "u2", UserLimits{DailyWithdrawal: 1000}); err != nil {
		t.Fatalf("SetUserLimits failed: %v", err)
	}
	if err := client.SetTraderTier(context.Background(), "u2", "gold"); err != nil {
		t.Fatalf("SetTraderTier failed: %v", err)
	}
	if err := client.ApproveKYC(context.Background(), "u2"); err != nil {
		t.Fatalf("ApproveKYC failed: %v", err)
	}
	if err := client.RejectKYC(context.Background(), "u2", "blurry document"); err != nil {
		t.Fatalf("RejectKYC failed: %v", err)
	}

	if got := client.MetricsSnapshot().Counters[MetricAdminAction]; got != 5 {
		t.Fatalf("expected 5 admin actions, got %d", got)
	}
}

func TestAdminEmailDispatch(t *testing.T) {
	var lastBody EmailDispatch
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/emails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body EmailDispatch
		if err := decodeTestBody(r, &body); err != nil {
			t.Errorf("decode dispatch: %v", err)
		}
		lastBody = body
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "Queued"})
	}), nil)
	adoptTestSession(t, client)

	if err := client.SendEmail(context.Background(), EmailDispatch{Subject: "hi", Body: "there"}); !errors.Is(err, ErrInvalidEmailDispatch) {
		t.Fatalf("expected ErrInvalidEmailDispatch for missing recipient, got %v", err)
	}

	if err := client.SendEmail(context.Background(), EmailDispatch{
		RecipientEmail: "bob@example.com",
		Subject:        "Welcome",
		Body:           "Hello Bob",
		Broadcast:      true, // must be forced off for single sends
	}); err != nil {
		t.Fatalf("SendEmail failed: %v", err)
	}
	if lastBody.Broadcast {
		t.Fatal("expected single send to clear the broadcast flag")
	}

	if err := client.SendBulkEmail(context.Background(), "Maintenance", "Heads up"); err != nil {
		t.Fatalf("SendBulkEmail failed: %v", err)
	}
	if !lastBody.Broadcast || lastBody.RecipientEmail != "" {
		t.Fatalf("expected broadcast dispatch, got %+v", lastBody)
	}
}
