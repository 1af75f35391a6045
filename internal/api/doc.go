// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package api serves the storefront over HTTP with a chi router.

Every JSON endpoint answers with the same envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}}

Routes:

	GET    /api/v1/health
	GET    /api/v1/products                    ?category= &featured= &best_sellers= &ids= &limit=
	GET    /api/v1/products/{id}
	GET    /api/v1/products/{id}/similar       ?k=
	GET    /api/v1/recommendations             ?q= &k=
	POST   /api/v1/recommendations/rebuild
	GET    /api/v1/delivery/{pin}
	GET    /api/v1/cart
	DELETE /api/v1/cart
	POST   /api/v1/cart/items
	PATCH  /api/v1/cart/items/{id}
	DELETE /api/v1/cart/items/{id}
	POST   /api/v1/cart/adopt
	GET    /auth/v1/user
	GET    /rest/v1/{table}                    filter grammar of rowstore.ParseQuery
	POST   /rest/v1/{table}
	PATCH  /rest/v1/{table}
	DELETE /rest/v1/{table}
	GET    /metrics

Cart requests identify the shopper by the X-Cart-Session header or the
cart_session_id cookie. A session is issued when neither is present. A valid
bearer token adds the user id, so the cart spans the session and the account.

The /rest/v1 and /auth/v1 routes are the remote row store consumed by
internal/remote. Requests for cart_items must carry X-Cart-Session and only
reach rows of that session or of the user of a valid bearer token; writes that
name another shopper in session_id or user_id get 403. An invalid token on
/rest/v1 is anonymous rather than rejected. OPEN_ROW_API disables the scoping.
*/
package api
