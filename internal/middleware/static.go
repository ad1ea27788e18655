package middleware

import (
	"net/http"
	"path"
	"strings"

	"pos_order_backend/pkg/utils"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

const apiBanner = `<h1>POS Order API</h1>
<p>Server is running successfully!</p>
<h3>Available Endpoints:</h3>
<ul>
    <li>GET /api/orders - Get all orders</li>
    <li>GET /api/orders/:invoiceNumber - Get single order</li>
    <li>POST /api/orders - Create new order</li>
    <li>PATCH /api/orders/:invoiceNumber - Update order status</li>
    <li>DELETE /api/orders/:invoiceNumber - Delete order</li>
    <li>GET /api/orders/date/:startDate/:endDate - Orders by date range</li>
    <li>GET /api/stats - Get statistics</li>
    <li>GET /api/search?query=xxx - Search orders</li>
    <li>GET /api/sales/items - Sales per item</li>
    <li>GET /api/sales/top-item - Top selling item</li>
    <li>GET /api/sales/monthly - Monthly sales</li>
    <li>GET /api/menu - Menu catalog</li>
    <li>POST /api/checkout - Place an order from a cart</li>
</ul>`

// StaticFiles serves files under publicDir for paths no route matched.
// Directories are only served through their index.html.
func StaticFiles(publicDir string) gin.HandlerFunc {
	return static.Serve("/", static.LocalFile(publicDir, false))
}

// NotFound answers whatever StaticFiles left: unknown /api paths and
// non-GET methods get a JSON 404, "/" gets the endpoint banner.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if strings.HasPrefix(reqPath, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Route not found"))
			return
		}
		if path.Clean("/"+reqPath) == "/" {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(apiBanner))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Page not found"))
	}
}
