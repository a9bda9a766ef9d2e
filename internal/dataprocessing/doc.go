// Package dataprocessing turns complaint workbooks into classified records,
// filtered views and the topic report.
//
// # Pipeline
//
//	Workbooks → Loader → records → Classifier → Apply (display) → GenerateReport
//
// The Loader reads one sheet per month with excelize and lower-cases the
// comment column. The Classifier adds the joined topic list once per load;
// filtering and reporting never modify records.
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	records, err := loader.LoadSources(ctx, domain.SingleSource("Reclamacoes_2025_Traduzido.xlsx"))
//	if err != nil {
//	    return err
//	}
//	records = dataprocessing.NewClassifier(nil).Annotate(records)
//
//	view := dataprocessing.SortByDate(dataprocessing.Apply(records, filter))
//	report := dataprocessing.NewSummarizer(logger, dataprocessing.DefaultSummarizerConfig()).
//	    GenerateReport(ctx, view, filter.Months, suggestions)
//
// # Error Handling
//
// Missing workbooks and suggestion files surface as MISSING_INPUT application
// errors; a sheet without the comment column is a PARSING error. Unreadable
// dates and scores become nil and never fail a load.
package dataprocessing
