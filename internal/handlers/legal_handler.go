package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct {
	siteName     string
	contactEmail string
}

func NewLegalHandler(siteName, contactEmail string) *LegalHandler {
	return &LegalHandler{siteName: siteName, contactEmail: contactEmail}
}

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.siteName + `</title>
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: June 2025</p>
<h2>Information We Collect</h2>
<p>When you create an account we store your username, email address and avatar. Reviews and comments you post are stored with your username.</p>
<h2>How We Use Your Information</h2>
<p>Your data is used to operate ` + h.siteName + `, authenticate your account and show your reviews and comments on game pages.</p>
<h2>Account Deletion</h2>
<p>Deleting your account permanently removes your profile together with every review and comment you posted.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + h.contactEmail + `</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.siteName + `</title>
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: June 2025</p>
<h2>Acceptance</h2>
<p>By using ` + h.siteName + `, you agree to these terms.</p>
<h2>User Conduct</h2>
<p>You agree not to post offensive, illegal or harmful content. Reviews and comments that read as abusive are hidden automatically and removed shortly after posting.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at ` + h.contactEmail + `</p>
</body></html>`)
}
