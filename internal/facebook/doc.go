// Package facebook publishes page posts through the Facebook Graph API.
//
// Only the single /feed operation the bot needs is implemented. The page
// token authorizes it; treat every request and error as potentially
// containing that token and keep both away from logs.
package facebook
