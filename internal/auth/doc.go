// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

/*
Package auth answers one question for the cart: who is the current user, if anyone.

Login flows are outside this repository. Tokens are HS256 JWTs carrying the user id
in the "sub" claim; the server verifies them with JWTManager and places the user id
in the request context, and the CLI keeps the token it was given in client storage.

Sources of the current user:

  - Anonymous: never authenticated
  - Static: a fixed user id (tests, scripts)
  - ContextSource: the user id placed in the context by the API middleware
  - TokenSource: a token from client storage verified locally with a shared secret
  - remote.Client: the server's /auth/v1/user endpoint
*/
package auth
