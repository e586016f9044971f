package service

import "fmt"

const summarizePrompt = `Summarize the following text for a reader who has not seen it.
Write three to five plain sentences in the same language as the text.
Do not add facts that are not in the text and do not use bullet points.

Text:
%s`

const coreSummaryPrompt = `Read the following text and state its single central claim.
Answer with one sentence in the same language as the text, with no preamble.

Text:
%s`

const sampleTextPrompt = `Write one self-contained expository passage of about 200 words
suitable for a reading comprehension exercise. Pick an everyday science,
history or society topic. Use neutral tone, a short title on the first line,
and plain paragraphs with no lists or markdown.`

func buildSummarizePrompt(text string) string {
	return fmt.Sprintf(summarizePrompt, text)
}

func buildCoreSummaryPrompt(text string) string {
	return fmt.Sprintf(coreSummaryPrompt, text)
}
