// Package prompt renders the text templates that flows send to a reasoning
// service.
//
// The syntax is a small Handlebars subset:
//
//	{{name}}  {{user.location}}  {{{raw}}}
//	{{#each items}}- {{this.title}} ({{@index}}){{else}}none{{/each}}
//	{{#each items}}{{title}} for {{../user}} at {{@root.city}}{{/each}}
//	{{#if budget}}Budget: {{budget}}{{else}}No budget{{/if}}
//	{{#unless done}}...{{/unless}}
//	{{! comment }}  {{!-- comment --}}
//
// Nothing is HTML-escaped. Inside each a bare path only looks at the current
// element; outer values are reached with ../ or @root. Absent values render as
// the empty string and iteration preserves the order of the input. Block tags
// that sit alone on a line do not leave blank lines behind.
package prompt
