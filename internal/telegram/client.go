// Package telegram is a minimal Bot API client covering the two calls
// the forwarder needs: sendMessage and sendDocument.
package telegram

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends notifications to a single chat.
type Client struct {
	token   string
	chatID  string
	baseURL string

	textClient *http.Client
	docClient  *http.Client
}

// New creates a client for the given bot token and chat.
func New(token, chatID string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: defaultBaseURL,
		// Document uploads get a longer deadline than text sends.
		textClient: &http.Client{Timeout: 20 * time.Second},
		docClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// SendMessage delivers markup-formatted text to the chat.
func (c *Client) SendMessage(text string) error {
	form := url.Values{
		"chat_id":    {c.chatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	}
	resp, err := c.textClient.PostForm(c.endpoint("sendMessage"), form)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus("sendMessage", resp)
}

// SendDocument uploads a file to the chat as a document.
func (c *Client) SendDocument(filename, contentType string, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", c.chatID); err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="document"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}

	resp, err := c.docClient.Post(c.endpoint("sendDocument"), w.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus("sendDocument", resp)
}

func checkStatus(method string, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("telegram %s: status %d: %s",
		method, resp.StatusCode, strings.TrimSpace(string(body)))
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
