package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// จำนวนไฟล์ที่ upload พร้อมกันสูงสุดใน UploadMany
const uploadConcurrency = 4

// Client เรียก asset API: presign → PUT → confirm
// และ fallback เป็น direct upload อัตโนมัติเมื่อ server sign ไม่ได้
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient แทนที่ http.Client default (เช่นใส่ custom timeout)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// File ไฟล์หนึ่งไฟล์ที่จะ upload
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Prefix      string
}

type UploadResult struct {
	AssetID uuid.UUID
	URL     string
}

// envelope response มาตรฐานของ API
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type presignData struct {
	AssetID   uuid.UUID `json:"assetId"`
	UploadURL string    `json:"uploadUrl"`
}

type confirmData struct {
	URL string `json:"url"`
}

type directUploadData struct {
	AssetID uuid.UUID `json:"assetId"`
	URL     string    `json:"url"`
}

// Upload ส่งไฟล์ขึ้น storage แล้วคืน asset id กับ read URL
// ลอง flow presign → PUT → confirm ก่อน ขั้นไหนพังก็ตามจะ fallback
// ไปส่งผ่าน server — error ออกเฉพาะเมื่อทั้งสองทางล้มเหลว
// ยกเว้น server ปฏิเสธ request เอง (auth/validation) ซึ่งส่งซ้ำ
// ผ่าน direct upload ก็โดนปฏิเสธเหมือนเดิม
func (c *Client) Upload(ctx context.Context, file File) (*UploadResult, error) {
	result, presignedErr := c.uploadPresigned(ctx, file)
	if presignedErr == nil {
		return result, nil
	}
	if rejectsRequest(presignedErr) {
		return nil, presignedErr
	}

	result, err := c.uploadDirect(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("direct upload failed after presigned path (%v): %w", presignedErr, err)
	}
	return result, nil
}

// uploadPresigned ทำ flow presign → client PUT → confirm
func (c *Client) uploadPresigned(ctx context.Context, file File) (*UploadResult, error) {
	presigned, err := c.presign(ctx, file)
	if err != nil {
		return nil, err
	}

	if err := c.putObject(ctx, presigned.UploadURL, file); err != nil {
		return nil, err
	}

	confirmed, err := c.confirm(ctx, presigned.AssetID)
	if err != nil {
		return nil, err
	}

	return &UploadResult{AssetID: presigned.AssetID, URL: confirmed.URL}, nil
}

// rejectsRequest บอกว่า API ปฏิเสธ request ตัวเอง (token หมดอายุ,
// content type ไม่ผ่าน validation) — retry อีกทางก็ไม่เปลี่ยนผล
func rejectsRequest(err error) bool {
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case "VALIDATION_ERROR", "UNAUTHORIZED", "FORBIDDEN":
		return true
	}
	return false
}

// UploadMany ส่งหลายไฟล์พร้อมกันและคืนผลตามลำดับ input เสมอ
// ไฟล์ที่ fail ได้ entry ว่าง ไม่ทำให้ทั้ง batch ล้ม
func (c *Client) UploadMany(ctx context.Context, files []File) []UploadResult {
	results := make([]UploadResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			result, err := c.Upload(gctx, file)
			if err == nil {
				results[i] = *result
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// ResolveURLs แปลง asset id หลายตัวเป็น read URL ใน request เดียว
func (c *Client) ResolveURLs(ctx context.Context, assetIDs []uuid.UUID) (map[string]*string, error) {
	body := map[string]any{"assetIds": assetIDs}

	var data struct {
		URLs map[string]*string `json:"urls"`
	}
	if err := c.postJSON(ctx, "/api/v1/assets/url", body, &data); err != nil {
		return nil, err
	}
	return data.URLs, nil
}

func (c *Client) presign(ctx context.Context, file File) (*presignData, error) {
	body := map[string]any{
		"filename":    file.Name,
		"contentType": file.ContentType,
	}
	if file.Prefix != "" {
		body["prefix"] = file.Prefix
	}

	var data presignData
	if err := c.postJSON(ctx, "/api/v1/assets/presign", body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) putObject(ctx context.Context, uploadURL string, file File) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(file.Data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", file.ContentType)
	req.ContentLength = int64(len(file.Data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("object upload returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) confirm(ctx context.Context, assetID uuid.UUID) (*confirmData, error) {
	var data confirmData
	if err := c.postJSON(ctx, "/api/v1/assets/confirm", map[string]any{"assetId": assetID}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) uploadDirect(ctx context.Context, file File) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Name))
	h.Set("Content-Type", file.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if file.Prefix != "" {
		if err := w.WriteField("prefix", file.Prefix); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/assets/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	var data directUploadData
	if err := c.do(req, &data); err != nil {
		return nil, err
	}

	return &UploadResult{AssetID: data.AssetID, URL: data.URL}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.do(req, target)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) do(req *http.Request, target any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("invalid response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if target != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, target)
	}
	return nil
}
