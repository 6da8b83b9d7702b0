package service

import (
	"github.com/skip2/go-qrcode"
)

// SurveyQRGenerator encodes the post-order survey link for an order as a
// PNG, printed on the receipt.
type SurveyQRGenerator struct {
	BaseURL string
}

func NewSurveyQRGenerator(baseURL string) *SurveyQRGenerator {
	return &SurveyQRGenerator{BaseURL: baseURL}
}

func (g *SurveyQRGenerator) Generate(orderNumber string) ([]byte, error) {
	return qrcode.Encode(g.BaseURL+"/survey?order="+orderNumber, qrcode.Medium, 256)
}

var _ QRGenerator = (*SurveyQRGenerator)(nil)
