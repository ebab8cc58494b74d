package main

// @title           Caixa API
// @version         1.0
// @description     API de catálogo, vendas, livro caixa, dívidas e contas fixas para pequenos comércios
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
