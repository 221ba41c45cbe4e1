//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Externals stands in for the acquirer, the hotel supplier, the insurer and
// the FX feed behind one test server.
type Externals struct {
	Server *httptest.Server

	mu         sync.Mutex
	orders     map[string]int64 // orderId -> amount in minor units
	declined   map[string]bool
	bookCalls  atomic.Int32
	rejectBook atomic.Bool
	priceDrift atomic.Bool
	seq        atomic.Int64
}

func NewExternals() *Externals {
	e := &Externals{
		orders:   map[string]int64{},
		declined: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /vpos/register.do", e.vposRegister)
	mux.HandleFunc("POST /vpos/getOrderStatusExtended.do", e.vposStatus)
	mux.HandleFunc("POST /supplier/prebook", e.supplierPrebook)
	mux.HandleFunc("POST /supplier/book", e.supplierBook)
	mux.HandleFunc("POST /insurance/policies", e.insurancePolicies)
	mux.HandleFunc("GET /rates", e.rates)

	e.Server = httptest.NewServer(mux)
	return e
}

func (e *Externals) URL(path string) string {
	return e.Server.URL + path
}

func (e *Externals) Close() {
	e.Server.Close()
}

// Reset forgets orders and restores the happy path.
func (e *Externals) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orders = map[string]int64{}
	e.declined = map[string]bool{}
	e.bookCalls.Store(0)
	e.rejectBook.Store(false)
	e.priceDrift.Store(false)
}

// Decline makes the acquirer report orderID as not paid.
func (e *Externals) Decline(orderID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.declined[orderID] = true
}

func (e *Externals) RejectBookings()      { e.rejectBook.Store(true) }
func (e *Externals) ReportPriceChange()   { e.priceDrift.Store(true) }
func (e *Externals) BookCalls() int       { return int(e.bookCalls.Load()) }
func (e *Externals) OrderAmount(id string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders[id]
}

func (e *Externals) vposRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseInt(r.PostForm.Get("amount"), 10, 64)
	if err != nil {
		writeJSON(w, map[string]any{"errorCode": "3", "errorMessage": "bad amount"})
		return
	}

	id := fmt.Sprintf("vpos-%d", e.seq.Add(1))
	e.mu.Lock()
	e.orders[id] = amount
	e.mu.Unlock()

	writeJSON(w, map[string]any{
		"orderId": id,
		"formUrl": e.URL("/vpos/pay?mdOrder=" + id),
	})
}

func (e *Externals) vposStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := r.PostForm.Get("orderId")

	e.mu.Lock()
	amount, known := e.orders[id]
	declined := e.declined[id]
	e.mu.Unlock()

	if !known {
		writeJSON(w, map[string]any{"errorCode": "6", "errorMessage": "Order not found"})
		return
	}
	status := 2
	if declined {
		status = 6
	}
	writeJSON(w, map[string]any{
		"orderStatus":           status,
		"errorCode":             "0",
		"orderNumber":           id,
		"amount":                amount,
		"currency":              "051",
		"actionCodeDescription": map[bool]string{true: "Card declined", false: ""}[declined],
	})
}

type fakeRoomRef struct {
	RoomID  string `json:"roomId"`
	RateKey string `json:"rateKey"`
}

func (e *Externals) supplierPrebook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rooms []fakeRoomRef `json:"rooms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rooms := make([]map[string]any, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		rooms = append(rooms, map[string]any{
			"roomId":  room.RoomID,
			"rateKey": room.RateKey,
			"price":   map[string]string{"gross": "25000", "net": "25000", "tax": "0"},
		})
	}
	writeJSON(w, map[string]any{
		"bookable":     !strings.HasPrefix(firstKey(req.Rooms), "soldout"),
		"priceChanged": e.priceDrift.Load(),
		"currency":     "AMD",
		"rooms":        rooms,
	})
}

func (e *Externals) supplierBook(w http.ResponseWriter, _ *http.Request) {
	n := e.bookCalls.Add(1)
	if e.rejectBook.Load() {
		writeJSON(w, map[string]any{
			"success": false,
			"error":   map[string]string{"code": "NO_AVAILABILITY", "message": "room sold out"},
		})
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"confirmation": map[string]string{
			"code":      fmt.Sprintf("CONF-%d", n),
			"reference": fmt.Sprintf("REF-%d", n),
			"status":    "confirmed",
		},
	})
}

func (e *Externals) insurancePolicies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"policies": []map[string]string{
			{"number": "POL-1", "provider": "test-insurer", "premium": "3000", "currency": "AMD"},
		},
	})
}

func (e *Externals) rates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"base":  "AMD",
		"rates": map[string]string{"USD": "400", "EUR": "430"},
	})
}

func firstKey(rooms []fakeRoomRef) string {
	if len(rooms) == 0 {
		return ""
	}
	return rooms[0].RateKey
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
