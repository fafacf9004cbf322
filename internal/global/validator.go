package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
	_ = Validate.RegisterValidation("order_sender", validateOrderSender)
}

// validateNoXSS kiểm tra XSS trong text người dùng nhập (ghi chú, tin nhắn)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID kiểm tra chuỗi có phải ObjectID hex hợp lệ
func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

// validateOrderSender kiểm tra sender của tin nhắn đơn hàng (user hoặc admin)
func validateOrderSender(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "user" || v == "admin"
}
