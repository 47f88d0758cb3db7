package swaggerkit

import docs "streamdex/internal/services/api/docs"

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
