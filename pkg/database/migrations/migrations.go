// Package migrations registers the tables managed by AutoMigrate
package migrations

import (
	"lipapay/app/models/credential"
	"lipapay/app/models/invoice"
	"lipapay/app/models/link"
	"lipapay/app/models/merchant"
	"lipapay/app/models/subscription"
	"lipapay/app/models/transaction"
)

// RegisterTables returns every model that participates in auto migration
func RegisterTables() []interface{} {
	return []interface{}{
		&merchant.Merchant{},
		&credential.ProviderCredential{},
		&transaction.Transaction{},
		&subscription.Subscription{},
		&invoice.Invoice{},
		&link.PaymentLink{},
	}
}
