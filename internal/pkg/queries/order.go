package queries

const (
	GetOrderByID = `
		SELECT
			o.id,
			o.status,
			o.user_id,
			o.guest_id,
			o.total,
			o.shipping_street,
			o.shipping_number,
			o.shipping_complement,
			o.shipping_district,
			o.shipping_city,
			o.shipping_state,
			o.shipping_postal_code,
			COALESCE(u.name, g.name, ''),
			COALESCE(u.email, g.email, ''),
			COALESCE(u.phone, g.phone, ''),
			COALESCE(u.tax_id, g.tax_id, ''),
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		LEFT JOIN guests g ON g.id = o.guest_id
		WHERE o.id = $1
	`

	GetOrderItemsByOrderID = `
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`

	UpdateOrderStatus = `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
)
