package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"dokon-pos/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// receiptTemplate mirrors the paper slip the shop has always printed:
// header with shop name and receipt number, one line per item, dashed
// total, thank-you footer.
var receiptTemplate = template.Must(template.New("receipt").
	Funcs(template.FuncMap{"fmt": formatUZS}).
	Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; padding: 20px; }
  .receipt { width: 300px; margin: 0 auto; }
  .header { text-align: center; margin-bottom: 15px; }
  .item { display: flex; justify-content: space-between; margin: 5px 0; }
  .total { font-weight: bold; margin-top: 10px; border-top: 1px dashed #000; padding-top: 5px; }
  .footer { margin-top: 15px; text-align: center; font-size: 12px; }
</style>
</head>
<body>
  <div class="receipt">
    <div class="header">
      <h2>{{.ShopName}}</h2>
      <p>Chek raqami: #{{printf "%04d" .Sale.ReceiptNo}}</p>
      <p>Sana: {{.Date}}</p>
      {{if .Sale.Customer}}<p>Mijoz: {{.Sale.Customer}}</p>{{end}}
    </div>
    {{range .Sale.Items}}
    <div class="item">
      <span>{{.Name}} ({{.Quantity}} x {{fmt .PriceAtSale}})</span>
      <span>{{fmt .Subtotal}}</span>
    </div>
    {{end}}
    {{if gt .Sale.DiscountPercent 0}}
    <div class="item">
      <span>Chegirma:</span>
      <span>{{.Sale.DiscountPercent}}%</span>
    </div>
    {{end}}
    <div class="item total">
      <span>Jami:</span>
      <span>{{fmt .Sale.Total}}</span>
    </div>
    <div class="footer">
      <p>Rahmat!</p>
      <p>Qaytib kelishingizni kutamiz</p>
    </div>
  </div>
</body>
</html>`))

type receiptItem struct {
	Name        string
	Quantity    int
	PriceAtSale int64
	Subtotal    int64
}

type receiptData struct {
	ShopName string
	Date     string
	Sale     struct {
		ReceiptNo       int
		Customer        string
		DiscountPercent int
		Total           int64
		Items           []receiptItem
	}
}

// ReceiptHTML renders the printable receipt for a sale.
func ReceiptHTML(sale *models.Sale, shopName string) ([]byte, error) {
	var data receiptData
	data.ShopName = shopName
	data.Date = sale.SaleTime.Format("02.01.2006 15:04")
	data.Sale.ReceiptNo = sale.ReceiptNo
	data.Sale.Customer = sale.Customer
	data.Sale.DiscountPercent = sale.DiscountPercent
	data.Sale.Total = sale.Total
	for _, item := range sale.Items {
		data.Sale.Items = append(data.Sale.Items, receiptItem{
			Name:        item.Name,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
			Subtotal:    item.PriceAtSale * int64(item.Quantity),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// detectChromePath checks CHROME_PATH first, then the usual install
// locations.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ReceiptPDF prints the receipt through headless Chrome and returns the
// PDF bytes. The HTML is handed over as a data URL so no extra route is
// needed.
func ReceiptPDF(ctx context.Context, sale *models.Sale, shopName string) ([]byte, error) {
	html, err := ReceiptHTML(sale, shopName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required when running in a container
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(3.15).  // 80mm till roll
				WithPaperHeight(11.7). // cut to length by the printer
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print receipt pdf: %w", err)
	}

	return pdfBuf, nil
}
