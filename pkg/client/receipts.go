package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/naveenspark/financeflow/pkg/domain"
)

// maxReceiptSize caps uploaded receipt images.
const maxReceiptSize = 10 << 20

// ScanReceipt uploads a receipt image and returns the extracted fields.
func (c *Client) ScanReceipt(ctx context.Context, filename string, r io.Reader) (*domain.ReceiptScan, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("client.ScanReceipt: create form file: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, maxReceiptSize+1))
	if err != nil {
		return nil, fmt.Errorf("client.ScanReceipt: read image: %w", err)
	}
	if n > maxReceiptSize {
		return nil, fmt.Errorf("client.ScanReceipt: image larger than %d MB", maxReceiptSize>>20)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.ScanReceipt: close form: %w", err)
	}

	var scan domain.ReceiptScan
	if err := c.send(ctx, http.MethodPost, "/receipts/scan", &buf, mw.FormDataContentType(), &scan); err != nil {
		return nil, fmt.Errorf("client.ScanReceipt: %w", err)
	}
	return &scan, nil
}
