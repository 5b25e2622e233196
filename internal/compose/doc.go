// Package compose turns a horoscope reading into a localized HTML email.
//
// Templates and sign labels are embedded. Each locale has a markdown
// template, horoscope.{locale}.md, whose frontmatter holds the subject;
// locales without one use the English template. English sign names are the
// title-cased identifiers; other locales read translations/{locale}/signs.yaml,
// which can be extended or overridden from a directory on disk.
//
// The horoscope text is embedded as written: tags are removed, but quotes,
// apostrophes and ampersands reach the HTML body unchanged.
package compose
