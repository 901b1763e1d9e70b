// Package plugin lets Lua scripts add motions and actions.
//
// A script registers commands through the modal module:
//
//	-- gl: last character of the line, usable after operators (dgl)
//	modal.motion({ keys = "gl", name = "line_last", kind = "inclusive" }, function(ctx)
//	  return ctx.line, ctx.line_len - 1
//	end)
//
//	-- gs: swap the current line with the next one
//	modal.action({ keys = "gs", name = "swap_lines", repeatable = true }, function(ctx)
//	  local lines = ctx.lines
//	  local i = ctx.line + 1
//	  if i >= #lines then return nil end
//	  lines[i], lines[i + 1] = lines[i + 1], lines[i]
//	  return { lines = lines, line = ctx.line + 1, col = ctx.col }
//	end)
//
// The ctx table holds line and col (0-based), count, lines (a 1-based
// array), line_len (runes in the cursor line) and, for commands declared with char = true, the typed char.
//
// A motion returns the target line and column, or nil when it finds no
// target. Its kind is exclusive, inclusive or linewise. An action returns
// nil to leave the document alone or a table with any of lines, line and
// col.
package plugin
