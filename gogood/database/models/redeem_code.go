package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RedeemStatusPending  = "pending"
	RedeemStatusRedeemed = "redeemed"
	RedeemStatusExpired  = "expired"
)

type RedeemCode struct {
	bun.BaseModel `bun:"table:redeem_codes,alias:rc"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Code       string `bun:"code,notnull,unique"`
	UserID     int64  `bun:"user_id,notnull"`
	ShopItemID int64  `bun:"shop_item_id"`
	Status     string `bun:"status,notnull,default:'pending'"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
