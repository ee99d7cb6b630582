package queries

const (
	transactionColumns = `
			t.id,
			t.order_id,
			t.amount,
			t.type,
			t.status,
			t.payment_method,
			t.gateway_transaction_id,
			t.gateway_reference,
			t.qr_code,
			t.qr_code_image,
			t.qr_code_artifact,
			t.expires_at,
			t.fraud_decision,
			t.created_at,
			t.updated_at`

	GetTransactionByOrderID = `
		SELECT` + transactionColumns + `
		FROM transactions t
		WHERE t.order_id = $1
	`

	GetTransactionByGatewayTransactionID = `
		SELECT` + transactionColumns + `,
			o.status,
			o.total,
			o.user_id,
			o.guest_id,
			COALESCE(u.name, g.name, ''),
			COALESCE(u.email, g.email, ''),
			COALESCE(u.phone, g.phone, ''),
			COALESCE(u.tax_id, g.tax_id, '')
		FROM transactions t
		JOIN orders o ON o.id = t.order_id
		LEFT JOIN users u ON u.id = o.user_id
		LEFT JOIN guests g ON g.id = o.guest_id
		WHERE t.gateway_transaction_id = $1
	`

	GetStalePendingTransactions = `
		SELECT` + transactionColumns + `
		FROM transactions t
		WHERE t.status = 'PENDING'
			AND t.updated_at < $1
			AND t.created_at > $2
		ORDER BY t.updated_at ASC
		LIMIT $3
	`

	InsertTransaction = `
		INSERT INTO transactions (
			id,
			order_id,
			amount,
			type,
			status,
			payment_method,
			gateway_transaction_id,
			gateway_reference,
			qr_code,
			qr_code_image,
			qr_code_artifact,
			expires_at,
			fraud_decision
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	UpdateTransactionStatus = `
		UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	TouchPendingTransaction = `
		UPDATE transactions
		SET updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	UpdateTransactionQRCodeArtifact = `
		UPDATE transactions
		SET qr_code_artifact = $1, updated_at = NOW()
		WHERE id = $2
	`
)
