package sqlstore

// applyPagination appends LIMIT/OFFSET. A zero limit is a real limit, not "all".
func applyPagination(query string, args []interface{}, limit, offset int) (string, []interface{}) {
	query += " LIMIT ?"
	args = append(args, limit)

	if offset > 0 {
		query += " OFFSET ?"
		args = append(args, offset)
	}
	return query, args
}
