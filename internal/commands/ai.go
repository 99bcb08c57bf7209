package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/contentally/ally/internal/chat"
	"github.com/contentally/ally/internal/flows"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/parser"
)

// flowCall describes one AI helper invocation for runFlow
type flowCall[O any] struct {
	title  string // toast title on failure
	prompt string // user side of the chat record
	typ    models.MessageType
	call   func(context.Context, *flows.Flows) (O, error)
	reply  func(O) string
}

// runFlow runs a flow under the configured timeout, records the exchange
// in the chat history and raises an error toast on failure
func runFlow[O any](cmd *cobra.Command, app *App, fc flowCall[O]) (O, error) {
	var zero O
	f, err := app.Flows(cmd.Context())
	if err != nil {
		return zero, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.RequestTimeout())
	defer cancel()

	out, err := fc.call(ctx, f)
	if err != nil {
		app.Notifier.Notify(notify.Error(fc.title, err.Error()))
		recordFailure(app, fc.prompt, err)
		return zero, reportedError{err}
	}

	reply, err := chat.AssistantMessage(fc.typ, fc.reply(out), out)
	if err != nil {
		app.Logger.Warn("failed to encode chat message", zap.Error(err))
		return out, nil
	}
	record(app, chat.UserMessage(fc.prompt), reply)
	return out, nil
}

func newSummarizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize text from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := runFlow(cmd, app, flowCall[flows.SummarizeOutput]{
				title:  "Summarize failed",
				prompt: "Summarize: " + excerpt(text),
				typ:    models.MessageSummary,
				call: func(ctx context.Context, f *flows.Flows) (flows.SummarizeOutput, error) {
					return f.Summarize(ctx, flows.SummarizeInput{PageContent: text})
				},
				reply: func(o flows.SummarizeOutput) string { return o.Summary },
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Summary)
			return nil
		}),
	}
}

func newImproveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "improve [file]",
		Short: "Rewrite text for clarity and explain the changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := runFlow(cmd, app, flowCall[flows.ImproveOutput]{
				title:  "Improve failed",
				prompt: "Improve: " + excerpt(text),
				typ:    models.MessageImprovement,
				call: func(ctx context.Context, f *flows.Flows) (flows.ImproveOutput, error) {
					return f.Improve(ctx, flows.ImproveInput{PageContent: text})
				},
				reply: func(o flows.ImproveOutput) string { return o.ImprovedContent },
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, out.ImprovedContent)
			if out.Explanation != "" {
				fmt.Fprintf(w, "\n💡 %s\n", out.Explanation)
			}
			return nil
		}),
	}
}

func newTranslateCmd(opts *rootOptions) *cobra.Command {
	var to, from string

	cmd := &cobra.Command{
		Use:     "translate [file]",
		Short:   "Translate text into another language",
		Example: `  echo "Bonjour tout le monde" | ally translate --to English`,
		Args:    cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := runFlow(cmd, app, flowCall[flows.TranslateOutput]{
				title:  "Translation failed",
				prompt: fmt.Sprintf("Translate to %s: %s", to, excerpt(text)),
				typ:    models.MessageTranslation,
				call: func(ctx context.Context, f *flows.Flows) (flows.TranslateOutput, error) {
					return f.Translate(ctx, flows.TranslateInput{
						TextToTranslate: text,
						TargetLanguage:  to,
						SourceLanguage:  from,
					})
				},
				reply: func(o flows.TranslateOutput) string { return o.TranslatedText },
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, out.TranslatedText)
			if out.DetectedSourceLanguage != "" {
				fmt.Fprintf(w, "\n(detected source language: %s)\n", out.DetectedSourceLanguage)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "Target language (required)")
	cmd.Flags().StringVarP(&from, "from", "f", flows.AutoDetect, "Source language")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newOCRCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ocr <image>",
		Short: "Extract the text from an image",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			mimeType, _, _ := strings.Cut(http.DetectContentType(data), ";")
			uri := parser.EncodeDataURI(mimeType, data)

			out, err := runFlow(cmd, app, flowCall[flows.OCROutput]{
				title:  "Text extraction failed",
				prompt: "Extract text from " + args[0],
				typ:    models.MessageOCR,
				call: func(ctx context.Context, f *flows.Flows) (flows.OCROutput, error) {
					return f.ExtractText(ctx, flows.OCRInput{ImageDataURI: uri})
				},
				reply: func(o flows.OCROutput) string { return o.ExtractedText },
			})
			if err != nil {
				return err
			}
			if out.ExtractedText == "" {
				app.Notifier.Notify(notify.Info("No text found", args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ExtractedText)
			return nil
		}),
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:     "ask <question>",
		Short:   "Answer a question using only a document",
		Example: `  ally ask --doc notes.txt "When is the launch?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			var docArgs []string
			if docPath != "" {
				docArgs = []string{docPath}
			}
			doc, err := readInput(cmd, docArgs)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")

			out, err := runFlow(cmd, app, flowCall[flows.DocumentOutput]{
				title:  "Question failed",
				prompt: question,
				typ:    models.MessageAnswer,
				call: func(ctx context.Context, f *flows.Flows) (flows.DocumentOutput, error) {
					return f.AskDocument(ctx, flows.DocumentInput{DocumentContent: doc, Question: question})
				},
				reply: func(o flows.DocumentOutput) string { return o.Answer },
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Answer)
			return nil
		}),
	}

	cmd.Flags().StringVar(&docPath, "doc", "", "Document file (default stdin)")
	return cmd
}

func newResearchCmd(opts *rootOptions) *cobra.Command {
	var focus, sourcesPath string

	cmd := &cobra.Command{
		Use:   "research <topic>",
		Short: "Research a topic with sources and follow-up questions",
		Long: `Produce a research summary, a list of sources and three follow-up questions.
--sources appends your own "Title | URL | Publication" lines to the model's list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			topic := strings.Join(args, " ")

			var extra []parser.Source
			if sourcesPath != "" {
				data, err := os.ReadFile(sourcesPath)
				if err != nil {
					return fmt.Errorf("failed to read sources: %w", err)
				}
				extra = parser.ParseSources(string(data))
			}

			out, err := runFlow(cmd, app, flowCall[flows.ResearchOutput]{
				title:  "Research failed",
				prompt: "Research: " + topic,
				typ:    models.MessageResearch,
				call: func(ctx context.Context, f *flows.Flows) (flows.ResearchOutput, error) {
					out, err := f.Research(ctx, flows.ResearchInput{Topic: topic, FocusPoints: focus})
					out.Sources = append(out.Sources, extra...)
					return out, err
				},
				reply: func(o flows.ResearchOutput) string { return o.Summary },
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, out.Summary)
			if len(out.Sources) > 0 {
				fmt.Fprintln(w, "\nSources:")
				for _, s := range out.Sources {
					if s.Publication != "" {
						fmt.Fprintf(w, "  - %s (%s) %s\n", s.Title, s.Publication, s.URL)
					} else {
						fmt.Fprintf(w, "  - %s %s\n", s.Title, s.URL)
					}
				}
			}
			fmt.Fprintln(w, "\nFollow-up questions:")
			for i, q := range out.FollowUpQuestions {
				fmt.Fprintf(w, "  %d. %s\n", i+1, q)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&focus, "focus", "", "Points to focus on")
	cmd.Flags().StringVar(&sourcesPath, "sources", "", "File of extra sources, one \"Title | URL | Publication\" per line")
	return cmd
}

func newWriteCmd(opts *rootOptions) *cobra.Command {
	var in flows.ContentInput

	cmd := &cobra.Command{
		Use:   "write <prompt>",
		Short: "Generate content such as an email, blog post or poem",
		Example: `  ally write "Announce our new office" --type email --tone casual --max 150`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			in.Prompt = strings.Join(args, " ")

			out, err := runFlow(cmd, app, flowCall[flows.ContentOutput]{
				title:  "Writing failed",
				prompt: in.Prompt,
				typ:    models.MessageContent,
				call: func(ctx context.Context, f *flows.Flows) (flows.ContentOutput, error) {
					return f.GenerateContent(ctx, in)
				},
				reply: func(o flows.ContentOutput) string { return o.GeneratedContent },
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.GeneratedContent)
			for _, warning := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s\n", warning)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.ContentType, "type", "", "Content type: "+strings.Join(flows.ContentTypes, "|"))
	cmd.Flags().StringVar(&in.Tone, "tone", "", "Tone: "+strings.Join(flows.Tones, "|"))
	cmd.Flags().IntVar(&in.MaxLength, "max", 0, "Approximate maximum length in words")
	cmd.Flags().StringVar(&in.CustomInstructions, "instructions", "", "Extra instructions for the writer")
	return cmd
}

// excerpt shortens long input for the chat record
func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > 80 {
		return string(r[:77]) + "..."
	}
	return text
}
