package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type ReceiptHandler struct {
	txService   service.TransactionService
	settingRepo repository.SettingRepository
}

func NewReceiptHandler(txService service.TransactionService, settingRepo repository.SettingRepository) *ReceiptHandler {
	return &ReceiptHandler{txService: txService, settingRepo: settingRepo}
}

// Receipt renders a rental slip as plain text for the host print bridge
// GET /api/v1/transactions/:id/receipt
func (h *ReceiptHandler) Receipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	t, err := h.txService.Get(id, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	parkName, _ := h.settingRepo.Get(model.SettingParkName)
	if parkName == "" {
		parkName = "Water Park"
	}
	note, _ := h.settingRepo.Get(model.SettingReceiptNote)

	var b strings.Builder
	line := strings.Repeat("-", 32)
	fmt.Fprintf(&b, "%s\n%s\n", center(parkName, 32), line)
	fmt.Fprintf(&b, "Receipt: %s\n", shortID(t.ID))
	fmt.Fprintf(&b, "Date:    %s\n", t.CreatedAtLocal)
	fmt.Fprintf(&b, "Name:    %s\n", t.CustomerName)
	fmt.Fprintf(&b, "Phone:   %s\n", t.CustomerPhone)
	fmt.Fprintf(&b, "Cashier: %s\n%s\n", t.CashierName, line)

	for _, row := range []struct {
		label string
		qty   int
	}{
		{"Male Costume", t.MaleCostume},
		{"Female Costume", t.FemaleCostume},
		{"Kids Costume", t.KidsCostume},
		{"Tube", t.Tube},
		{"Locker", t.Locker},
	} {
		if row.qty > 0 {
			fmt.Fprintf(&b, "%-24s x%d\n", row.label, row.qty)
		}
	}

	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "%-20s %10.2f\n", "Subtotal", t.Subtotal)
	fmt.Fprintf(&b, "%-20s %10.2f\n", "Advance", t.Advance)
	fmt.Fprintf(&b, "%-20s %10.2f\n", "Total Due", t.TotalDue)
	if t.IsVIP {
		fmt.Fprintf(&b, "%s\n", center("* COMPLIMENTARY *", 32))
	}
	if t.Status == model.RentalAdvanceReturned {
		fmt.Fprintf(&b, "%s\n", line)
		fmt.Fprintf(&b, "%-20s %10.2f\n", "Deduction", t.TotalDeduction)
		fmt.Fprintf(&b, "%-20s %10.2f\n", "Returned", t.AmountReturned)
	}
	if note != "" {
		fmt.Fprintf(&b, "%s\n%s\n", line, note)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(b.String())
}

// UPIQR renders a payment QR for the configured UPI id
// Query params: amount (required)
// GET /api/v1/receipts/upi-qr
func (h *ReceiptHandler) UPIQR(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "A positive amount is required"})
	}

	upiID, err := h.settingRepo.Get(model.SettingUPIID)
	if err != nil || upiID == "" {
		return c.Status(404).JSON(fiber.Map{"error": "UPI id is not configured"})
	}
	upiName, _ := h.settingRepo.Get(model.SettingUPIName)

	content := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		url.QueryEscape(upiID), url.QueryEscape(upiName), amount)

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate QR code"})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return strings.ToUpper(s[len(s)-6:])
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
