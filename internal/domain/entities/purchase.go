package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductGuide is the only product sold through the funnel.
const ProductGuide = "one-app-per-day-guide"

// PaymentStatus representa o resultado de um pagamento
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PurchaseRecord representa uma compra registrada pelo webhook do Stripe
type PurchaseRecord struct {
	ID               uuid.UUID         `json:"id" gorm:"primaryKey;column:id;type:uuid;default:gen_random_uuid()"`
	Email            string            `json:"email" gorm:"column:email;not null"`
	StripeSessionID  string            `json:"stripe_session_id" gorm:"column:stripe_session_id"`
	StripeCustomerID *string           `json:"stripe_customer_id" gorm:"column:stripe_customer_id"`
	AmountPaid       float64           `json:"amount_paid" gorm:"column:amount_paid;type:numeric(10,2)"`
	Currency         string            `json:"currency" gorm:"column:currency;type:varchar(8)"`
	Product          string            `json:"product" gorm:"column:product"`
	Metadata         datatypes.JSONMap `json:"metadata" gorm:"column:metadata;type:jsonb"`
	PaymentStatus    PaymentStatus     `json:"payment_status" gorm:"column:payment_status;type:varchar(16)"`
	CreatedAt        time.Time         `json:"created_at" gorm:"column:created_at"`
}

// TableName define o nome da tabela no banco de dados
func (PurchaseRecord) TableName() string {
	return "purchases"
}
