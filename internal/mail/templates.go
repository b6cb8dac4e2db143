package mail

import "fmt"

func layout(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="margin:0; padding:0; background:#F4F6F8; font-family:Arial, sans-serif; color:#333;">
    <div style="max-width:600px; margin:20px auto; background:#FFFFFF; border-radius:8px; padding:30px;">
      %s
      <hr style="border:none; border-top:1px solid #E0E0E0; margin:30px 0;">
      <p style="font-size:12px; color:#999;">
        You are receiving this email because of your TalentBridge account.
        If this wasn't you, you can safely ignore it.
      </p>
    </div>
  </body>
</html>`, content)
}

func verifyEmailTemplate(name, code string) string {
	return layout(fmt.Sprintf(`
      <h2>Verify Your Account</h2>
      <p>Hello %s,</p>
      <p>Welcome to <strong>TalentBridge</strong>! Use the code below to verify your account:</p>
      <div style="margin:25px 0; text-align:center;">
        <span style="font-size:28px; letter-spacing:6px; font-weight:bold;">%s</span>
      </div>
      <p>This code expires in <strong>15 minutes</strong>.</p>
      <p>Best regards,<br>The TalentBridge Team</p>`, name, code))
}

func resetPasswordTemplate(name, link string) string {
	return layout(fmt.Sprintf(`
      <h2>Reset Your Password</h2>
      <p>Hello %s,</p>
      <p>We received a request to reset the password for your <strong>TalentBridge</strong> account.</p>
      <div style="margin:25px 0;">
        <a href="%s" style="background:#1A73E8; color:#FFFFFF; padding:12px 24px; border-radius:5px; text-decoration:none;">Reset Password</a>
      </div>
      <p>
        This link expires in <strong>3 hours</strong>. If you didn't request a
        password reset, please ignore this email or contact support.
      </p>
      <p>Best regards,<br>The TalentBridge Team</p>`, name, link))
}
