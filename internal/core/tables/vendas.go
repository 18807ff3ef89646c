package tables

import "github.com/JonMunkholm/planilha/internal/core"

func init() {
	registerVendas()
}

func registerVendas() {
	core.Register(core.ExportSchema{
		Info: core.SchemaInfo{
			Key:   "vendas",
			Label: "Vendas",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "data_venda", Synonyms: []string{"data", "data venda", "data da venda", "date", "dt venda"}, Type: core.FieldDate, Required: true, Normalizer: NormalizeDate},
			{Name: "produto", Synonyms: []string{"product", "item", "descricao"}, Type: core.FieldText, Required: true, Normalizer: NormalizeTitle},
			{Name: "categoria", Synonyms: []string{"category", "grupo"}, Type: core.FieldText, Required: true, Normalizer: NormalizeTitle},
			{Name: "vendedor", Synonyms: []string{"seller", "vendedora", "representante"}, Type: core.FieldText, Required: true, Normalizer: NormalizeTitle},
			{Name: "documento", Synonyms: []string{"cpf", "cnpj", "cpf/cnpj", "cpf cnpj", "doc"}, Type: core.FieldDocument, Required: true, Normalizer: NormalizeDocument},
			{Name: "quantidade", Synonyms: []string{"qtd", "qtde", "quantity", "qty"}, Type: core.FieldNumeric, Required: true, Normalizer: NormalizeNumber},
			{Name: "preco_unitario", Synonyms: []string{"preco unitario", "preco", "valor unitario", "unit price", "price"}, Type: core.FieldNumeric, Required: true, Normalizer: NormalizeNumber},
			{Name: "valor_total", Synonyms: []string{"valor total", "total", "valor", "total value"}, Type: core.FieldNumeric, Required: true, Normalizer: NormalizeNumber},
		},
		Derive:  RecomputeTotal("quantidade", "preco_unitario", "valor_total"),
		KeepRow: RequireField("produto"),
	})
}
