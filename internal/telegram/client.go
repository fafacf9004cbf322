package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
)

const apiBaseURL = "https://api.telegram.org"

// Button là một nút trong inline keyboard.
// Đặt URL hoặc CallbackData, không đặt cả hai.
type Button struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

// User là người gửi message / callback
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat là cuộc hội thoại chứa message
type Chat struct {
	ID int64 `json:"id"`
}

// Message là một tin nhắn Telegram
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// CallbackQuery là sự kiện bấm nút inline keyboard
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// Update là một sự kiện từ long polling
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// Client là HTTP client gọi Telegram Bot API cho một bot token.
type Client struct {
	token  string
	client *http.Client
}

// NewClient tạo Client cho một bot token
func NewClient(token string) *Client {
	return &Client{
		token: token,
		client: &http.Client{
			// Long polling giữ kết nối mở, timeout phải lớn hơn timeout của getUpdates
			Timeout: 60 * time.Second,
		},
	}
}

// apiResult là envelope chung của Telegram Bot API
type apiResult struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// call gọi một method của Bot API với payload JSON, decode result vào out (nếu khác nil)
func (c *Client) call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	log := logger.GetAppLogger()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", apiBaseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"method": method,
		}).Error("📱 [TELEGRAM] Lỗi khi gọi Telegram API")
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result apiResult
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return fmt.Errorf("telegram API trả về body không hợp lệ: %s", string(bodyBytes))
	}
	if !result.Ok {
		log.WithFields(map[string]interface{}{
			"method":      method,
			"statusCode":  resp.StatusCode,
			"description": result.Description,
		}).Error("📱 [TELEGRAM] Telegram API trả về lỗi")
		return fmt.Errorf("telegram API %s thất bại: %s", method, result.Description)
	}

	if out != nil {
		if err := json.Unmarshal(result.Result, out); err != nil {
			return err
		}
	}
	return nil
}

// SendMessage gửi tin nhắn văn bản tới một chat, kèm inline keyboard nếu có.
// keyboard là các hàng nút, mỗi hàng tối đa nên để 3 nút.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard [][]Button) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if len(keyboard) > 0 {
		payload["reply_markup"] = map[string]interface{}{
			"inline_keyboard": keyboard,
		}
	}
	return c.call(ctx, "sendMessage", payload, nil)
}

// GetUpdates long-poll các update mới kể từ offset.
// timeoutSec là thời gian server giữ kết nối chờ update.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	payload := map[string]interface{}{
		"offset":  offset,
		"timeout": timeoutSec,
		"allowed_updates": []string{
			"message",
			"callback_query",
		},
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// AnswerCallbackQuery báo cho Telegram biết callback đã được xử lý
// (tắt trạng thái loading trên nút). text hiển thị dạng toast nếu khác rỗng.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	payload := map[string]interface{}{
		"callback_query_id": callbackID,
	}
	if text != "" {
		payload["text"] = text
	}
	return c.call(ctx, "answerCallbackQuery", payload, nil)
}
