// README: Telegram group notification for orders with a preferred driver.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"omaga/internal/modules/order"
)

const sendTimeout = 10 * time.Second

// TelegramNotifier posts a group message when an order names a preferred
// driver. It implements order.Notifier; failures are logged, never returned,
// so order creation does not depend on Telegram being up.
type TelegramNotifier struct {
	db       *pgxpool.Pool
	client   *http.Client
	log      *slog.Logger
	botToken string
	chatID   string
}

func NewTelegramNotifier(db *pgxpool.Pool, log *slog.Logger, botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		db:       db,
		client:   &http.Client{Timeout: sendTimeout},
		log:      log,
		botToken: botToken,
		chatID:   chatID,
	}
}

func (n *TelegramNotifier) OrderCreated(o *order.Order) {
	if o.PreferredDriverID == nil {
		return
	}
	if n.botToken == "" || n.chatID == "" {
		n.log.Warn("telegram notifier not configured, skipping", "order_id", o.ID)
		return
	}
	go n.send(o)
}

func (n *TelegramNotifier) send(o *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	var driverName string
	err := n.db.QueryRow(ctx, `
		SELECT u.name FROM drivers d JOIN users u ON u.id = d.user_id WHERE d.id = $1`,
		string(*o.PreferredDriverID),
	).Scan(&driverName)
	if err != nil {
		n.log.Error("telegram notify: resolve driver", "order_id", o.ID, "err", err)
		return
	}

	var waNumber string
	err = n.db.QueryRow(ctx, `SELECT wa_number FROM users WHERE id = $1`, string(o.CustomerID)).Scan(&waNumber)
	if err != nil {
		n.log.Error("telegram notify: resolve customer", "order_id", o.ID, "err", err)
		return
	}

	text := fmt.Sprintf(
		"🔔 **Pesanan Baru Masuk!**\n\n• **Driver:** %s\n• **Pemesan:** %s\n\nDriver yang ditugaskan harap segera memeriksa dasbor.",
		driverName, waNumber,
	)
	body, _ := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.log.Error("telegram notify: build request", "order_id", o.ID, "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("telegram notify: send", "order_id", o.ID, "err", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		n.log.Error("telegram notify: non-200 response", "order_id", o.ID, "status", resp.StatusCode)
		return
	}
	n.log.Info("telegram notification sent", "order_id", o.ID, "driver", driverName)
}
