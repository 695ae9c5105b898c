package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclesense/internal/db"
	"github.com/terraincognita07/cyclesense/internal/i18n"
	"github.com/terraincognita07/cyclesense/internal/models"
	"github.com/terraincognita07/cyclesense/internal/services"
	"gorm.io/gorm"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func analyzeCmd(rt *runtime) *cobra.Command {
	var (
		profileID uint
		now       string
		format    string
		language  string
	)

	c := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the stored cycles of one profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatPretty && format != formatJSON {
				return fmt.Errorf("unsupported format %q (use pretty or json)", format)
			}

			evaluatedAt := services.DateAtLocation(time.Now(), rt.cfg.Location)
			if now != "" {
				parsed, err := services.ParseDay(now)
				if err != nil {
					return fmt.Errorf("invalid --now %q: expected YYYY-MM-DD", now)
				}
				evaluatedAt = parsed
			}

			analyzer, err := rt.analyzer()
			if err != nil {
				return err
			}
			database, err := db.OpenSQLite(rt.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			sqlDB, err := database.DB()
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			defer sqlDB.Close()

			repositories := db.NewRepositories(database)
			profile, err := repositories.Profiles.FindByID(profileID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("profile %d not found", profileID)
			}
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			service := services.NewAnalysisService(analyzer, repositories.Cycles, repositories.Symptoms, repositories.Notes)
			analysis, err := service.AnalyzeProfile(profile, evaluatedAt)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeAnalysisJSON(cmd.OutOrStdout(), analysis)
			}

			i18nManager, err := i18n.NewDefaultManager(rt.cfg.DefaultLanguage)
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			if language == "" {
				language = profile.Language
			}
			return writeAnalysisSummary(cmd.OutOrStdout(), i18nManager, i18nManager.NormalizeLanguage(language), profile, analysis)
		},
	}

	c.Flags().UintVarP(&profileID, "profile", "p", 0, "Profile id (required)")
	c.Flags().StringVar(&now, "now", "", "Evaluation day as YYYY-MM-DD (defaults to today)")
	c.Flags().StringVarP(&format, "format", "f", formatPretty, "Output format: pretty or json")
	c.Flags().StringVar(&language, "lang", "", "Label language for pretty output (defaults to the profile language)")

	_ = c.MarkFlagRequired("profile")
	return c
}

func writeAnalysisJSON(w io.Writer, analysis services.CycleAnalysis) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(analysis)
}

func writeAnalysisSummary(w io.Writer, translator *i18n.Manager, language string, profile models.Profile, analysis services.CycleAnalysis) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile:      %s (#%d)\n", profile.Name, profile.ID)
	fmt.Fprintf(&b, "Today:        %s\n", services.FormatDate(analysis.Today))
	fmt.Fprintf(&b, "Phase:        %s", translator.Label(language, "phase", string(analysis.Current.Phase)))
	if analysis.Current.DayInCycle > 0 {
		fmt.Fprintf(&b, " (cycle day %d)", analysis.Current.DayInCycle)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Regularity:   %s\n", translator.Label(language, "regularity", string(analysis.Regularity)))

	next := analysis.NextPeriod
	fmt.Fprintf(&b, "Next period:  %s (%s .. %s), %s\n",
		services.FormatDate(next.StartDate),
		services.FormatDate(next.WindowStart),
		services.FormatDate(next.WindowEnd),
		translator.Label(language, "confidence", string(next.ConfidenceLevel)))
	if analysis.HasOvulationPrediction() {
		fmt.Fprintf(&b, "Ovulation:    %s (fertile %s .. %s)\n",
			services.FormatDate(analysis.Ovulation.Date),
			services.FormatDate(analysis.Ovulation.FertileWindowStart),
			services.FormatDate(analysis.Ovulation.FertileWindowEnd))
	}
	fmt.Fprintf(&b, "Data quality: %s (%d/100)\n", translator.Label(language, "quality", string(analysis.DataQuality.Level)), analysis.DataQuality.Score)
	fmt.Fprintf(&b, "Health score: %d/100\n", analysis.HealthScore)

	if len(analysis.Insights) > 0 {
		b.WriteString("\nInsights:\n")
		for _, insight := range analysis.Insights {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", insight.Type, insight.Title, insight.Message)
		}
	}
	if len(analysis.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, recommendation := range analysis.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", recommendation)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
