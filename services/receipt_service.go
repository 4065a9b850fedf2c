package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/Team-3XHandymen/fix-backend/configs"
	"github.com/Team-3XHandymen/fix-backend/database"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// GenerateBookingReceipt renders a PDF receipt for a completed booking and
// stores its URL on the booking. Runs async after the completed transition;
// a failure only costs the receipt, never the transition.
func GenerateBookingReceipt(booking models.Booking) {
	if booking.Status != models.StatusCompleted || booking.ReceiptURL != nil {
		return
	}

	htmlData, err := renderReceiptHTML(booking)
	if err != nil {
		log.Printf("Failed to render receipt HTML for booking %s: %v", booking.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("Failed to generate receipt PDF for booking %s: %v", booking.ID, err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, booking.Reference)
	if err != nil {
		log.Printf("Failed to upload receipt for booking %s: %v", booking.ID, err)
		return
	}

	if err := database.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("Failed to save receipt URL for booking %s: %v", booking.ID, err)
		return
	}
	log.Printf("Generated receipt for booking %s", booking.Reference)
}

func renderReceiptHTML(booking models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	fee := 0.0
	if booking.Fee != nil {
		fee = *booking.Fee
	}

	data := struct {
		Reference      string
		ClientName     string
		ProviderName   string
		ServiceName    string
		Address        string
		Fee            string
		CompletionDate string
	}{
		Reference:      booking.Reference,
		ClientName:     booking.Client.FullName,
		ProviderName:   booking.Provider.FullName,
		ServiceName:    booking.Service.Name,
		Address:        booking.Address,
		Fee:            fmt.Sprintf("%.2f", fee),
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(pdfBytes []byte, reference string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("receipts/%s", reference)
	resp, err := cld.Upload.Upload(ctx, bytes.NewReader(pdfBytes), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
